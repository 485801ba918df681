package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/catalogapi"
	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/library"
	http_controllers "github.com/mrlokans/catalog/internal/http"
	"github.com/mrlokans/catalog/internal/scheduler"
	"github.com/mrlokans/catalog/internal/session"
	"github.com/mrlokans/catalog/internal/toast"
	"github.com/mrlokans/catalog/internal/workspace"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs handler on addr until SIGINT or SIGTERM, then shuts down
// within the configured timeout.
func Serve(handler http.Handler, addr string, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		fmt.Printf("Starting server at %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -2 is SIGINT, plain kill is SIGTERM; SIGKILL cannot be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// csrfSecret decodes a hex secret, falling back to the raw bytes.
func csrfSecret(secret string) []byte {
	if secret == "" {
		return nil
	}
	if decoded, err := hex.DecodeString(secret); err == nil {
		return decoded
	}
	return []byte(secret)
}

// RunServe starts the front end.
func RunServe(cfg *config.Config, version string) {
	log.Printf("Starting catalog front end v%s", version)

	client := catalog.NewClient(cfg.Catalog.BaseURL)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := client.Ping(pingCtx); err != nil {
		log.Printf("WARNING: catalog API at %s is not reachable: %v", client.BaseURL(), err)
	}
	cancelPing()

	sessionDB, err := session.OpenStore(cfg.Session.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}
	defer func() {
		if err := sessionDB.Close(); err != nil {
			log.Printf("Error closing session database: %v", err)
		}
	}()
	sessions := session.NewManager(sessionDB, cfg.Session)

	secret := csrfSecret(cfg.Session.Secret)
	if secret == nil {
		log.Printf("WARNING: SESSION_SECRET is not set. CSRF protection is disabled.")
	}

	registry := workspace.NewRegistry(client, toast.Config{
		Display: cfg.Toast.Display,
		Fade:    cfg.Toast.Fade,
	})

	sched := scheduler.New()
	err = sched.Add(scheduler.Job{
		Name:     "workspace-sweep",
		Schedule: cfg.Workspace.SweepSchedule,
		Run: func(ctx context.Context) {
			registry.Sweep(cfg.Workspace.IdleTimeout)
		},
	})
	if err != nil {
		log.Fatalf("Failed to schedule workspace sweep: %v", err)
	}
	schedCtx, cancelSched := context.WithCancel(context.Background())
	sched.Start(schedCtx)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Workspaces:    registry,
		Sessions:      sessions,
		CSRFSecret:    secret,
		SecureCookies: cfg.Session.SecureCookies,
		Catalog:       client,
		Version:       version,
	})

	onShutdown := func(ctx context.Context) {
		cancelSched()
		sched.Stop()
		registry.Close()
	}

	Serve(router, fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port), cfg, onShutdown)
}

// RunAPI starts the development catalog API.
func RunAPI(cfg *config.Config) {
	db, err := database.NewDatabase(cfg.API.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	repo := library.NewRepository(db.DB)
	if cfg.API.Seed {
		seeded, err := repo.SeedIfEmpty()
		if err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
		if !seeded {
			log.Printf("[SEED] Catalog already has data, skipping")
		}
	}

	if cfg.Demo.ReadOnly {
		log.Printf("Demo mode enabled - write operations will be blocked")
	}

	sched := scheduler.New()
	if cfg.Demo.ResetSchedule != "" {
		err := sched.Add(scheduler.Job{
			Name:     "demo-reset",
			Schedule: cfg.Demo.ResetSchedule,
			Run: func(ctx context.Context) {
				if err := repo.Reset(); err != nil {
					log.Printf("[SCHEDULER] demo reset failed: %v", err)
				}
			},
		})
		if err != nil {
			log.Fatalf("Failed to schedule demo reset: %v", err)
		}
	}
	schedCtx, cancelSched := context.WithCancel(context.Background())
	sched.Start(schedCtx)

	handler := catalogapi.NewRouter(catalogapi.RouterConfig{
		Store:       repo,
		ReadOnly:    catalogapi.NewReadOnly(cfg.Demo.ReadOnly),
		CORSOrigins: cfg.API.CORSOrigins,
		Ping:        db.Ping,
	})

	onShutdown := func(ctx context.Context) {
		cancelSched()
		sched.Stop()
	}

	Serve(handler, fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port), cfg, onShutdown)
}

// RunSeed loads the sample catalog into the API database. With reset set,
// existing data is wiped first; otherwise a non-empty database is left alone.
func RunSeed(cfg *config.Config, reset bool) error {
	db, err := database.NewDatabase(cfg.API.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repo := library.NewRepository(db.DB)
	if reset {
		return repo.Reset()
	}

	seeded, err := repo.SeedIfEmpty()
	if err != nil {
		return err
	}
	if !seeded {
		log.Printf("[SEED] Catalog already has data, use --reset to reload it")
	}
	return nil
}
