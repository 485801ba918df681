package catalog

// Messages are the fallback toast texts for one collection.
type Messages struct {
	ListFailed    string
	Empty         string
	CreateFailed  string
	UpdateFailed  string
	DeleteFailed  string
	OptionsFailed string
}

// Descriptor describes one collection of the catalog API.
type Descriptor struct {
	Name            string // singular, used in messages ("book instance")
	Plural          string // URL segment of the UI and lookup key ("bookinstances")
	CollectionPath  string // POST target and prefix for /{id}
	ListPath        string // GET target for the collection
	ListKey         string // key of the collection in the list response
	FormOptionsPath string // reference options endpoint, empty when not needed
	Messages        Messages
}

var (
	Authors = Descriptor{
		Name:           "author",
		Plural:         "authors",
		CollectionPath: "/authors",
		ListPath:       "/authors",
		ListKey:        "author_list",
		Messages: Messages{
			ListFailed:   "Error fetching authors",
			Empty:        "No authors found",
			CreateFailed: "Error creating author",
			UpdateFailed: "Error updating author",
			DeleteFailed: "Cannot delete author",
		},
	}

	Books = Descriptor{
		Name:            "book",
		Plural:          "books",
		CollectionPath:  "/books",
		ListPath:        "/books/",
		ListKey:         "book_list",
		FormOptionsPath: "/bookscreateform",
		Messages: Messages{
			ListFailed:    "Error fetching books",
			Empty:         "No books found",
			CreateFailed:  "Error creating book",
			UpdateFailed:  "Error updating book",
			DeleteFailed:  "Error deleting book",
			OptionsFailed: "Error fetching form data",
		},
	}

	BookInstances = Descriptor{
		Name:            "book instance",
		Plural:          "bookinstances",
		CollectionPath:  "/bookinstances",
		ListPath:        "/bookinstances/",
		ListKey:         "bookinstance_list",
		FormOptionsPath: "/bookinstancescreateform",
		Messages: Messages{
			ListFailed:    "Error fetching book instances",
			Empty:         "No book instances found",
			CreateFailed:  "Error creating book instance",
			UpdateFailed:  "Error updating book instance",
			DeleteFailed:  "Error deleting book instance",
			OptionsFailed: "Error loading books",
		},
	}

	Genres = Descriptor{
		Name:           "genre",
		Plural:         "genres",
		CollectionPath: "/genres",
		ListPath:       "/genres/",
		ListKey:        "genre_list",
		Messages: Messages{
			ListFailed:   "Error fetching genres",
			Empty:        "No genres found",
			CreateFailed: "Error creating genre",
			UpdateFailed: "Error updating genre",
			DeleteFailed: "Error deleting genre",
		},
	}
)
