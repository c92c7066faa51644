package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"rectiflex-backend/config"
	"rectiflex-backend/internal/api"
	"rectiflex-backend/internal/db"
	"rectiflex-backend/internal/notify"
	"rectiflex-backend/internal/reminder"
	"rectiflex-backend/internal/store"
	"rectiflex-backend/internal/workorder"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "rectiflex ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if cfg.Auth.JWTSecret == "" {
		logger.Fatalf("auth.jwt_secret must be configured")
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	// Notification hub for connected websocket clients
	hub := notify.NewHub()

	// Optional web push channel
	var workerPool *notify.WorkerPool
	if cfg.Push.Enabled {
		if cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "" {
			logger.Fatalf("push is enabled but VAPID keys are not configured")
		}
		webpushOptions := webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		workerPool = notify.NewWorkerPool(cfg.WorkerPool.Size, gormDB, &webpushOptions)
		workerPool.Start(ctx)
		logger.Printf("web push worker pool started with %d workers", cfg.WorkerPool.Size)
	}

	buildURL := workOrderURLBuilder(cfg.Server.PublicBaseURL)
	factory := workorder.NewFactory(appStore, hub, buildURL, cfg.EscalationNotifiesTwice())

	// Run the overdue work-order reminder in the background
	reminderSvc := reminder.NewService(cfg, appStore, hub, workerPool, buildURL)
	go reminderSvc.Run(ctx)

	// Initialize router
	handler := api.NewHandler(appStore, factory, hub, workerPool, cfg)
	router := api.NewRouter(handler)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}

// workOrderURLBuilder returns the injected URL builder used in notification
// payloads.
func workOrderURLBuilder(baseURL string) workorder.URLBuilder {
	base := strings.TrimSuffix(baseURL, "/")
	return func(workOrderID int64) string {
		return fmt.Sprintf("%s/workorders/%d", base, workOrderID)
	}
}
