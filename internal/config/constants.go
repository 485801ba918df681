package config

const (
	// DefaultSessionDatabasePath is where the front end keeps its sessions
	DefaultSessionDatabasePath = "./catalog-sessions.db"

	// DefaultAPIDatabasePath is the development catalog API's database
	DefaultAPIDatabasePath = "./catalog.db"

	DefaultCatalogAPIURL = "http://localhost:3000/catalog"
)
