package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xelth-com/eckshipgo/internal/config"
	"github.com/xelth-com/eckshipgo/internal/database"
	"github.com/xelth-com/eckshipgo/internal/delivery"
	"github.com/xelth-com/eckshipgo/internal/delivery/gls"
	"github.com/xelth-com/eckshipgo/internal/handlers"
	"github.com/xelth-com/eckshipgo/internal/logger"
	"github.com/xelth-com/eckshipgo/internal/repository"
	"github.com/xelth-com/eckshipgo/internal/services/odoo"
	"github.com/xelth-com/eckshipgo/internal/services/picking"
	"github.com/xelth-com/eckshipgo/internal/services/settings"
	"github.com/xelth-com/eckshipgo/internal/websocket"
)

// defaultCompanyID is used for pickings without company
const defaultCompanyID = 1

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(logger.Config{Level: cfg.Log.Level, Development: cfg.Log.Development})
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer appLog.Sync()
	logger.SetDefault(appLog)

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database, appLog)
	if err != nil {
		appLog.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema (Critical for Zero-Config)
	if err := db.Migrate(); err != nil {
		appLog.Warnf("⚠️ Migration warning: %v", err)
	}

	repo := repository.New(db)

	// 4. Label generators
	appLog.Info("📦 Initializing label generators...")
	glsSettings := settings.NewGLSService(repo, appLog)
	registry := delivery.NewRegistry()
	if err := registry.Register(gls.NewGenerator(glsSettings, cfg.Warehouse, defaultCompanyID, appLog)); err != nil {
		appLog.Fatalf("Failed to register GLS generator: %v", err)
	}
	appLog.Infof("✅ Label generators registered: %v", registry.Types())

	// 5. Label station hub
	hub := websocket.NewHub(appLog)
	go hub.Run()

	pickings := picking.NewService(repo, registry, hub, appLog)

	// 6. Set up HTTP router
	router := handlers.NewRouter(handlers.Deps{
		Pickings:   pickings,
		GLS:        glsSettings,
		Carriers:   repo,
		Users:      repo,
		Generators: registry,
		Hub:        hub,
		JWTSecret:  cfg.JWTSecret,
		Log:        appLog,
	})

	// 7. Start Odoo Sync Service (Background)
	odooService := odoo.NewSyncService(repo, cfg.Odoo, appLog)
	odooService.Start()

	// 8. Start server with graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		appLog.Infof("🚀 Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	appLog.Warnf("⚠️  Received signal: %v. Shutting down gracefully...", sig)

	// Create context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		appLog.Errorf("HTTP server shutdown error: %v", err)
	}

	odooService.Stop()
	hub.Stop()

	// Close database (this also stops embedded PostgreSQL)
	appLog.Info("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		appLog.Errorf("Database close error: %v", err)
	}

	appLog.Info("✅ Shutdown complete")
}
