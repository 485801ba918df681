package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/catalogapi"
	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/library"
	"github.com/mrlokans/catalog/internal/session"
	"github.com/mrlokans/catalog/internal/toast"
	"github.com/mrlokans/catalog/internal/workspace"
)

type uiFixture struct {
	router   *gin.Engine
	registry *workspace.Registry
	repo     *library.Repository
}

// slowToasts keeps notices on screen for the whole test.
var slowToasts = toast.Config{Display: time.Hour, Fade: time.Hour}

func newCatalogServer(t *testing.T) (*httptest.Server, *library.Repository) {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := library.NewRepository(db.DB)
	require.NoError(t, repo.Seed())

	server := httptest.NewServer(catalogapi.NewRouter(catalogapi.RouterConfig{Store: repo}))
	t.Cleanup(server.Close)
	return server, repo
}

func setupUI(t *testing.T, mutate func(*RouterConfig)) *uiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server, repo := newCatalogServer(t)
	client := catalog.NewClient(server.URL + "/catalog")
	registry := workspace.NewRegistry(client, slowToasts)
	t.Cleanup(registry.Close)

	cfg := RouterConfig{
		Workspaces: registry,
		Catalog:    client,
		Version:    "test",
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return &uiFixture{router: NewRouter(cfg), registry: registry, repo: repo}
}

func (f *uiFixture) do(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *uiFixture) toasts(t *testing.T) []toast.Toast {
	t.Helper()
	ws, _ := f.registry.Get(DefaultWorkspaceKey)
	return ws.Toasts.Active()
}

func TestUI_HomeRedirectsToBooks(t *testing.T) {
	f := setupUI(t, nil)

	w := f.do(http.MethodGet, "/", nil, false)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/books", w.Header().Get("Location"))
}

func TestUI_Pages(t *testing.T) {
	f := setupUI(t, nil)

	t.Run("authors", func(t *testing.T) {
		w := f.do(http.MethodGet, "/authors", nil, false)
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `id="createAuthorButton"`)
		assert.Contains(t, body, "Create New Author")
		assert.Contains(t, body, `id="authorContainer"`)
		assert.Contains(t, body, "Jane Austen")
		assert.Contains(t, body, "Sat Dec 16 1775 - Fri Jul 18 1817")
		assert.NotContains(t, body, `id="authorCreationModal"`)
	})

	t.Run("books", func(t *testing.T) {
		w := f.do(http.MethodGet, "/books", nil, false)
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `<div class="book-title">Emma</div>`)
		assert.Contains(t, body, `<div class="book-authors">Jane Austen</div>`)
	})

	t.Run("book instances", func(t *testing.T) {
		w := f.do(http.MethodGet, "/bookinstances", nil, false)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Tue Mar 05 2024")
	})

	t.Run("security headers", func(t *testing.T) {
		w := f.do(http.MethodGet, "/genres", nil, false)
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	})

	t.Run("static stylesheet", func(t *testing.T) {
		w := f.do(http.MethodGet, "/static/catalog.css", nil, false)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), ".toast.show")
	})
}

func TestUI_CreateGenre(t *testing.T) {
	f := setupUI(t, nil)

	w := f.do(http.MethodPost, "/ui/genres/new", url.Values{}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="genreCreationModal"`)
	assert.Contains(t, w.Body.String(), `id="submitGenreButton" class="modal-button">Create</button>`)
	assert.Contains(t, w.Body.String(), `hx-post="/ui/genres/cancel"`)
	assert.Contains(t, w.Body.String(), `class="closeButton"`)

	w = f.do(http.MethodPost, "/ui/genres/submit", url.Values{"name": {"Poetry"}}, true)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Poetry")
	assert.NotContains(t, body, `id="genreCreationModal"`)
	assert.Contains(t, body, `hx-swap-oob="true"`)
	assert.Empty(t, f.toasts(t))

	genres, err := f.repo.ListGenres()
	require.NoError(t, err)
	assert.Len(t, genres, 5)
}

func TestUI_PlainPostRedirects(t *testing.T) {
	f := setupUI(t, nil)

	w := f.do(http.MethodPost, "/ui/genres/new", url.Values{}, false)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = f.do(http.MethodPost, "/ui/genres/submit", url.Values{"name": {"Poetry"}}, false)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/genres", w.Header().Get("Location"))

	w = f.do(http.MethodGet, "/genres", nil, false)
	assert.Contains(t, w.Body.String(), "Poetry")
}

func TestUI_ResubmittedEditDoesNotCreate(t *testing.T) {
	f := setupUI(t, nil)

	genres, err := f.repo.ListGenres()
	require.NoError(t, err)
	before := len(genres)
	f.do(http.MethodGet, "/genres", nil, false)

	w := f.do(http.MethodPost, "/ui/genres/"+genres[0].ID+"/edit", url.Values{}, true)
	require.Equal(t, http.StatusOK, w.Code)

	form := url.Values{"name": {"Renamed Genre"}}
	f.do(http.MethodPost, "/ui/genres/submit", form, true)
	w = f.do(http.MethodPost, "/ui/genres/submit", form, true)
	require.Equal(t, http.StatusOK, w.Code)

	genres, err = f.repo.ListGenres()
	require.NoError(t, err)
	assert.Len(t, genres, before)
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	assert.Contains(t, names, "Renamed Genre")
}

func TestUI_EditBookPreselectsReferences(t *testing.T) {
	f := setupUI(t, nil)

	books, err := f.repo.ListBooks()
	require.NoError(t, err)
	var emma, frankenstein = books[0], books[0]
	for _, b := range books {
		switch b.Title {
		case "Emma":
			emma = b
		case "Frankenstein":
			frankenstein = b
		}
	}

	f.do(http.MethodGet, "/books", nil, false)
	w := f.do(http.MethodPost, "/ui/books/"+frankenstein.ID+"/edit", url.Values{}, true)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, `id="bookCreationModal"`)
	assert.Contains(t, body, `id="submitBookButton" class="modal-button">Edit</button>`)
	assert.Contains(t, body, `value="Frankenstein"`)
	assert.Contains(t, body, `value="`+frankenstein.AuthorID+`" selected>Mary Shelley</option>`)
	assert.NotContains(t, body, `value="`+emma.AuthorID+`" selected>`)
	for _, g := range frankenstein.Genres {
		assert.Contains(t, body, `value="`+g.ID+`" checked>`)
	}

	// Cancel leaves edit mode; the next open is a create.
	f.do(http.MethodPost, "/ui/books/cancel", url.Values{}, true)
	w = f.do(http.MethodPost, "/ui/books/new", url.Values{}, true)
	assert.Contains(t, w.Body.String(), `id="submitBookButton" class="modal-button">Create</button>`)
}

func TestUI_DeleteInUseRaisesToast(t *testing.T) {
	f := setupUI(t, nil)

	authors, err := f.repo.ListAuthors()
	require.NoError(t, err)
	austen := authors[0]

	f.do(http.MethodGet, "/authors", nil, false)
	w := f.do(http.MethodPost, "/ui/authors/"+austen.ID+"/delete", url.Values{}, true)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Author has 1 book(s). Delete them first.")
	assert.Contains(t, body, "Jane Austen")

	active := f.toasts(t)
	require.Len(t, active, 1)

	w = f.do(http.MethodGet, "/ui/toasts", nil, true)
	assert.Contains(t, w.Body.String(), `class="toast show"`)

	w = f.do(http.MethodPost, "/ui/toasts/"+active[0].ID+"/dismiss", url.Values{}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `class="toast fading"`)
	assert.Equal(t, toast.StateFading, f.toasts(t)[0].State)

	w = f.do(http.MethodPost, "/ui/toasts/unknown/dismiss", url.Values{}, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUI_InstanceRequiresBook(t *testing.T) {
	f := setupUI(t, nil)

	f.do(http.MethodPost, "/ui/bookinstances/new", url.Values{}, true)
	w := f.do(http.MethodPost, "/ui/bookinstances/submit", url.Values{"imprint": {"Folio"}, "status": {"Available"}}, true)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Please select a book.")
	assert.Contains(t, body, `id="bookInstanceCreationModal"`)
	assert.Contains(t, body, `value="Folio"`)
}

func TestUI_UnknownRoutes(t *testing.T) {
	f := setupUI(t, nil)

	w := f.do(http.MethodGet, "/users", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = f.do(http.MethodPost, "/ui/users/new", url.Values{}, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUI_Health(t *testing.T) {
	t.Run("catalog reachable", func(t *testing.T) {
		f := setupUI(t, nil)
		w := f.do(http.MethodGet, "/health", nil, false)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"catalog_api": "ok"`)
	})

	t.Run("catalog down", func(t *testing.T) {
		down := httptest.NewServer(http.NotFoundHandler())
		down.Close()
		f := setupUI(t, func(cfg *RouterConfig) {
			cfg.Catalog = catalog.NewClient(down.URL + "/catalog")
		})
		w := f.do(http.MethodGet, "/health", nil, false)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "unhealthy")
	})
}

func TestUI_CSRF(t *testing.T) {
	f := setupUI(t, func(cfg *RouterConfig) {
		cfg.CSRFSecret = []byte("0123456789abcdef0123456789abcdef")
	})

	w := f.do(http.MethodGet, "/genres", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `hx-headers='{"X-CSRF-Token": "`)
	assert.Contains(t, w.Body.String(), `name="gorilla.csrf.Token"`)

	w = f.do(http.MethodPost, "/ui/genres/new", url.Values{}, true)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Header().Get("HX-Trigger"), "showToast")
}

func TestUI_SessionsSeparateWorkspaces(t *testing.T) {
	var sessions *session.Manager
	f := setupUI(t, func(cfg *RouterConfig) {
		db, err := session.OpenStore(filepath.Join(t.TempDir(), "sessions.db"))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		sessions = session.NewManager(db, config.Session{Lifetime: time.Hour})
		cfg.Sessions = sessions
	})

	first := httptest.NewRecorder()
	f.router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/books", nil))
	require.Equal(t, http.StatusOK, first.Code)
	cookies := first.Result().Cookies()
	require.NotEmpty(t, cookies)

	again := httptest.NewRequest(http.MethodGet, "/authors", nil)
	for _, c := range cookies {
		again.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, again)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, f.registry.Len())

	other := httptest.NewRecorder()
	f.router.ServeHTTP(other, httptest.NewRequest(http.MethodGet, "/books", nil))
	assert.Equal(t, 2, f.registry.Len())
}
