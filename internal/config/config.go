package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Catalog
		Session
		Toast
		Workspace
		Global
		API
		Demo
	}

	HTTP struct {
		Port int32
		Host string
	}
	Catalog struct {
		BaseURL string // Catalog API root, e.g. http://localhost:3000/catalog
	}
	Session struct {
		DBPath        string
		Lifetime      time.Duration
		Secret        string // Enables CSRF protection when set
		SecureCookies bool   // Set to false for local dev without HTTPS
	}
	Toast struct {
		Display time.Duration
		Fade    time.Duration
	}
	Workspace struct {
		IdleTimeout   time.Duration
		SweepSchedule string // Cron format
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	API struct {
		Port         int32
		Host         string
		DatabasePath string
		CORSOrigins  []string
		Seed         bool // Load sample data into an empty database on start
	}
	Demo struct {
		ReadOnly      bool
		ResetSchedule string // Cron format, empty disables resets
	}
)

// LoadDotEnv reads variables from .env files into the environment. Missing
// files are not an error.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("catalog_api_url", DefaultCatalogAPIURL)

	v.SetDefault("session_db_path", DefaultSessionDatabasePath)
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("session_secret", "")
	v.SetDefault("secure_cookies", false)

	v.SetDefault("toast_display", "15s")
	v.SetDefault("toast_fade", "500ms")

	v.SetDefault("workspace_idle_timeout", "2h")
	v.SetDefault("workspace_sweep_schedule", "*/10 * * * *")

	// Development catalog API
	v.SetDefault("api_port", 3000)
	v.SetDefault("api_host", "0.0.0.0")
	v.SetDefault("api_database_path", DefaultAPIDatabasePath)
	v.SetDefault("api_cors_origins", "*")
	v.SetDefault("api_seed", false)

	v.SetDefault("demo_read_only", false)
	v.SetDefault("demo_reset_schedule", "")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Catalog: Catalog{
			BaseURL: strings.TrimRight(v.GetString("CATALOG_API_URL"), "/"),
		},
		Session: Session{
			DBPath:        v.GetString("SESSION_DB_PATH"),
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			Secret:        v.GetString("SESSION_SECRET"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		Toast: Toast{
			Display: v.GetDuration("TOAST_DISPLAY"),
			Fade:    v.GetDuration("TOAST_FADE"),
		},
		Workspace: Workspace{
			IdleTimeout:   v.GetDuration("WORKSPACE_IDLE_TIMEOUT"),
			SweepSchedule: v.GetString("WORKSPACE_SWEEP_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		API: API{
			Port:         v.GetInt32("API_PORT"),
			Host:         v.GetString("API_HOST"),
			DatabasePath: v.GetString("API_DATABASE_PATH"),
			CORSOrigins:  splitList(v.GetString("API_CORS_ORIGINS")),
			Seed:         v.GetBool("API_SEED"),
		},
		Demo: Demo{
			ReadOnly:      v.GetBool("DEMO_READ_ONLY"),
			ResetSchedule: v.GetString("DEMO_RESET_SCHEDULE"),
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
