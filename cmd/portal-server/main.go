// Package main provides the closure portal server entry point. It hosts
// the crossing registry, the closure request API, the recent-activity
// feed, and the approved-closures export feed under a single process.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/golang/glog"

	"github.com/pavel195/rjd-project-web-portal/internal/db"
	"github.com/pavel195/rjd-project-web-portal/pkg/audit"
	"github.com/pavel195/rjd-project-web-portal/pkg/closure"
	"github.com/pavel195/rjd-project-web-portal/pkg/crossing"
	"github.com/pavel195/rjd-project-web-portal/pkg/export"
	"github.com/pavel195/rjd-project-web-portal/pkg/rbac"
)

func main() {
	var (
		listenAddr   string
		databaseType string
		databaseDSN  string
		seedPath     string
	)

	flag.StringVar(&listenAddr, "listen", ":8080", "Address to listen on")
	flag.StringVar(&databaseType, "db-type", "sqlite", "Database type (sqlite, postgres, or mysql)")
	flag.StringVar(&databaseDSN, "db-dsn", "", "Database connection string")
	flag.StringVar(&seedPath, "crossings", "/config/crossings.yaml", "Path to crossings seed file")
	flag.Parse()

	_ = flag.Set("logtostderr", "true")

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting portal server",
		"listen", listenAddr,
		"dbType", databaseType,
		"crossings", seedPath,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if databaseDSN == "" {
		databaseDSN = os.Getenv("DATABASE_DSN")
	}
	gormDB, err := db.Connect(databaseType, databaseDSN)
	if err != nil {
		glog.Fatalf("Failed to connect to database: %v", err)
	}

	crossingStore := crossing.NewStore(gormDB)
	closureStore := closure.NewStore(gormDB)
	if err := crossingStore.AutoMigrate(); err != nil {
		glog.Fatalf("Failed to migrate crossings schema: %v", err)
	}
	if err := closureStore.AutoMigrate(); err != nil {
		glog.Fatalf("Failed to migrate closures schema: %v", err)
	}

	auditStore := audit.NewStore(gormDB)
	if err := auditStore.AutoMigrate(); err != nil {
		glog.Fatalf("Failed to migrate audit schema: %v", err)
	}
	auditCfg := audit.ConfigFromEnv()
	go audit.NewRetentionWorker(auditStore, auditCfg.RetentionDays, logger).Run(ctx)

	if err := crossing.LoadSeed(crossingStore, seedPath, logger); err != nil {
		glog.Fatalf("Failed to load crossings seed: %v", err)
	}
	go func() {
		if err := crossing.WatchSeed(ctx, crossingStore, seedPath, logger); err != nil {
			logger.Error("crossings seed watch stopped", "error", err)
		}
	}()

	coordinator := closure.NewApprovalCoordinator(gormDB)
	svc := closure.NewService(closureStore, crossingStore, coordinator, logger)
	projector := export.NewProjector(gormDB)

	identity, err := identityMiddleware(logger)
	if err != nil {
		glog.Fatalf("Failed to configure identity middleware: %v", err)
	}

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-Id", "X-User-Name", "X-User-Role"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(identity)
	router.Use(audit.Middleware(auditStore, auditCfg, logger))

	router.Route("/api", func(r chi.Router) {
		r.Mount("/crossings", crossing.NewRouter(crossingStore))
		r.Mount("/closures", closure.NewRouter(svc, crossingStore))
		r.Mount("/activities", closure.NewActivityRouter(svc))
		r.Mount("/export", export.NewRouter(projector))
		r.Mount("/audit", audit.NewRouter(auditStore))
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := gormDB.DB()
		if err != nil || sqlDB.Ping() != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	httpServer := &http.Server{
		Addr:    listenAddr,
		Handler: router,
	}

	go func() {
		logger.Info("portal server ready", "listen", listenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			glog.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("portal server stopped")
}

// identityMiddleware selects the identity mode from PORTAL_AUTH_MODE:
// "header" (default, trusted proxy headers) or "jwt" (Bearer tokens).
func identityMiddleware(logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	switch mode := os.Getenv("PORTAL_AUTH_MODE"); mode {
	case "jwt":
		cfg := rbac.JWTIdentityConfig{
			RoleClaim:     envOrDefault("PORTAL_JWT_ROLE_CLAIM", "role"),
			PublicKeyPath: os.Getenv("PORTAL_JWT_PUBLIC_KEY_PATH"),
			Issuer:        os.Getenv("PORTAL_JWT_ISSUER"),
			Audience:      os.Getenv("PORTAL_JWT_AUDIENCE"),
			Logger:        logger,
		}
		logger.Info("using JWT auth",
			"roleClaim", cfg.RoleClaim,
			"hasPublicKey", cfg.PublicKeyPath != "")
		return rbac.JWTIdentityMiddleware(cfg)
	case "header", "":
		if mode == "" {
			logger.Info("using default header-based auth (X-User-Id / X-User-Role)")
		}
		return rbac.IdentityMiddleware(), nil
	default:
		glog.Fatalf("Unknown auth mode: %q (expected jwt, header, or empty)", mode)
		return nil, nil
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
