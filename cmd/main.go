package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	slackclient "filebridge/clients/slack"
	"filebridge/config"
	"filebridge/db"
	"filebridge/dispatcher"
	"filebridge/guards"
	"filebridge/handlers"
	"filebridge/processors"
	"filebridge/services/documents"
	slackusecase "filebridge/usecases/slack"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if err := db.RunMigrations(dbConn, cfg.DatabaseSchema); err != nil {
		return err
	}

	documentsRepo := db.NewPostgresProcessedDocumentsRepository(dbConn, cfg.DatabaseSchema)
	documentsService := documents.NewDocumentsService(documentsRepo)

	slackClient := slackclient.NewSlackClient(cfg.SlackConfig.BotToken, cfg.SlackConfig.AppToken)

	// Resolve the bot's own identity for the self-upload guard
	authResp, err := slackClient.AuthTest()
	if err != nil {
		return fmt.Errorf("failed to authenticate with Slack: %w", err)
	}
	log.Printf("🔐 Authenticated with Slack as bot user %s", authResp.UserID)

	guardChain := guards.NewChain(guards.Config{MaxFileSize: cfg.MaxFileSize})

	registry := processors.NewRegistry()
	processors.RegisterDocumentProcessors(registry)
	processors.RegisterImageProcessor(registry)

	slackUseCase := slackusecase.NewSlackUseCase(
		slackClient,
		documentsService,
		guardChain,
		registry,
		authResp.UserID,
		cfg.PipelineTimeout,
	)

	eventDispatcher := dispatcher.NewDispatcher()
	slackUseCase.RegisterHandlers(eventDispatcher)

	// Create a new router
	router := mux.NewRouter()

	documentsHandler := handlers.NewDocumentsHandler(documentsService)
	documentsHandler.SetupEndpoints(router)

	if cfg.SlackConfig.Mode == config.SlackModeWebhook {
		slackHandler := handlers.NewSlackEventsHandler(cfg.SlackConfig.SigningSecret, eventDispatcher)
		slackHandler.SetupEndpoints(router)
	} else {
		socketHandler := handlers.NewSocketModeHandler(slackClient.API(), eventDispatcher)
		go func() {
			if err := socketHandler.Run(context.Background()); err != nil {
				log.Printf("❌ Socket Mode connection terminated: %v", err)
			}
		}()
	}

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Setup and handle graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
