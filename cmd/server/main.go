package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"auditease-backend/internal/api"
	"auditease-backend/internal/config"
	"auditease-backend/internal/gemini"
	"auditease-backend/internal/handlers"
	"auditease-backend/internal/notify"
	"auditease-backend/internal/services"
	"auditease-backend/internal/store/postgres"
)

func main() {
	log.Println("Starting AuditEase Backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Initialize Database Connection Pool
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()

	dbpool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Unable to create database connection pool: %v\n", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(dbCtx); err != nil {
		log.Fatalf("FATAL: Unable to ping database: %v\n", err)
	}
	log.Println("Database connection pool established and pinged successfully.")

	// 3. Initialize Dependencies (Store, Gateway, Services, Handlers)
	pgStore := postgres.NewPostgresStore(dbpool)
	log.Println("Postgres store initialized.")

	// The credential is injected here; a missing key fails startup rather
	// than the first chat submission.
	geminiClient, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("FATAL: Failed to create Gemini client: %v", err)
	}
	log.Printf("Gemini client initialized (model=%s).", cfg.GeminiModel)

	// Slack notifications are optional; leave them off unless configured.
	var notifier notify.Notifier
	if cfg.SlackBotToken != "" && cfg.SlackChannelID != "" {
		slackNotifier, err := notify.NewSlackNotifier(cfg.SlackBotToken, cfg.SlackChannelID)
		if err != nil {
			log.Fatalf("FATAL: Failed to create Slack notifier: %v", err)
		}
		notifier = slackNotifier
		log.Println("Slack notifier initialized.")
	} else {
		log.Println("Slack notifications disabled (SLACK_BOT_TOKEN / SLACK_CHANNEL_ID not set).")
	}

	// --- Initialize Services ---
	documentService := services.NewDocumentService(pgStore)
	log.Println("DocumentService initialized.")
	auditService := services.NewAuditService(pgStore, notifier, cfg.WatchInterval)
	log.Println("AuditService initialized.")
	chatService := services.NewChatService(pgStore, geminiClient)
	log.Println("ChatService initialized.")
	standardsService := services.NewStandardsService(pgStore)
	log.Println("StandardsService initialized.")
	exportService := services.NewExportService(pgStore)
	log.Println("ExportService initialized.")

	// --- Initialize Handlers ---
	documentHandler := handlers.NewDocumentHandlers(documentService)
	auditHandler := handlers.NewAuditHandlers(auditService, exportService)
	chatHandler := handlers.NewChatHandlers(chatService)
	standardsHandler := handlers.NewStandardsHandlers(standardsService)
	log.Println("Handlers initialized.")

	// 4. Setup Router & Inject Dependencies
	routerDeps := api.RouterDependencies{
		DocumentHandler:  documentHandler,
		AuditHandler:     auditHandler,
		ChatHandler:      chatHandler,
		StandardsHandler: standardsHandler,
		Config:           cfg,
	}
	router := api.NewRouter(routerDeps)
	log.Println("HTTP router configured.")

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
		// Production hardening: Set timeouts to avoid Slowloris attacks.
		// WriteTimeout is generous because /watch streams stay open.
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Channel to listen for OS signals for graceful shutdown
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	// Run server in a goroutine so it doesn't block
	go func() {
		log.Printf("Server starting and listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not listen on %s: %v\n", cfg.HTTPPort, err)
		}
		log.Println("Server listener routine stopped.")
	}()

	// Wait for interrupt signal
	<-stopChan
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Server graceful shutdown failed: %v", err)
	}

	log.Println("Server shutdown complete.")
}
