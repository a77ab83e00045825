// Package main is the entry point for the GPH website server. It loads
// configuration, opens the selected blog storage backend, sets up routing,
// and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/genuinepracticalhomoeopathy/gph-website/internal/blogstore"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/cache"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/config"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/contact"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/database"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/handlers"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/render"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/router"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/session"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"blog_store", cfg.BlogStore,
	)

	store, err := openBlogStore(cfg)
	if err != nil {
		slog.Error("failed to open blog store", "backend", cfg.BlogStore, "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			slog.Error("failed to close blog store", "error", err)
		}
	}()

	contactStore, err := contact.NewStore(cfg.DataDir)
	if err != nil {
		slog.Error("failed to open contact store", "error", err)
		os.Exit(1)
	}

	// Optional Valkey-backed list cache; the site runs fine without it.
	var listCache *cache.BlogList
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.Connect(cfg.ValkeyAddr, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		listCache = cache.NewBlogList(valkeyClient, cache.DefaultBlogListTTL)
	} else {
		slog.Warn("valkey not configured, blog list cache disabled")
	}

	// In non-development environments, mark session cookies as Secure
	// (HTTPS-only).
	gate := session.NewGate(!cfg.IsDev())

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	r, limiters := router.New(gate, router.Handlers{
		Auth:    handlers.NewAuth(gate, cfg.AdminEmails, cfg.AdminPasswordHash),
		Blogs:   handlers.NewBlogs(store, gate, listCache),
		Contact: handlers.NewContact(contactStore),
		Debug:   handlers.NewDebug(gate, cfg.Env),
		Pages:   handlers.NewPages(renderer, store, gate),
	})
	defer func() {
		for _, l := range limiters {
			l.Stop()
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// openBlogStore builds the storage backend named in the configuration.
func openBlogStore(cfg *config.Config) (blogstore.Store, error) {
	switch cfg.BlogStore {
	case config.StorePostgres:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, err
		}
		if cfg.IsDev() {
			if err := database.Seed(db); err != nil {
				db.Close()
				return nil, err
			}
		}
		return blogstore.NewPostgresStore(db), nil

	case config.StoreMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return blogstore.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)

	default:
		return blogstore.NewFileStore(cfg.DataDir)
	}
}
