// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"docuchat/internal/config"
	"docuchat/internal/database"
	"docuchat/internal/handlers"
	"docuchat/internal/middleware"
	"docuchat/internal/repository/attachment"
	"docuchat/internal/repository/chat"
	"docuchat/internal/repository/project"
	"docuchat/internal/services"
	"docuchat/internal/services/ai"
	"docuchat/internal/services/assistant"
	"docuchat/internal/services/extract"
)

func main() {
	cfg := config.Load()
	logger := services.NewLogger("docuchat")

	// Foreign keys on through the DSN; one connection so session pragmas
	// set during migration apply to every statement.
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath+"?_pragma=foreign_keys(1)"), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	// A failed migration leaves the previous schema in place; the server
	// still starts so existing data stays reachable.
	if err := database.Migrate(db, logger); err != nil {
		logger.Error("schema migration failed", "error", err)
	}

	// --- Repositories ---
	projectRepo := project.NewProjectRepository(db)
	chatRepo := chat.NewChatRepository(db)
	attachRepo := attachment.NewAttachmentRepository(db)

	// --- Services ---
	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.OpenAIAPIKey
	aiConfig.BaseURL = cfg.OpenAIBaseURL
	provider, err := ai.NewOpenAIProvider(aiConfig)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize AI provider: %v", err)
	}

	assistantService, err := assistant.NewService(
		assistant.DefaultConfig(),
		provider,
		chatRepo,
		attachRepo,
		extract.NewPDFExtractor(),
		assistant.DocumentRelated,
		logger,
	)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize assistant service: %v", err)
	}

	projectService := services.NewProjectService(projectRepo, logger)
	chatService := services.NewChatService(chatRepo, projectRepo, logger)
	fileService := services.NewFileService(attachRepo, chatRepo, logger)

	// --- Handlers ---
	projectHandler := handlers.NewProjectHandler(projectService, logger)
	chatHandler := handlers.NewChatHandler(chatService, logger)
	fileHandler := handlers.NewFileHandler(fileService, int64(cfg.MaxUploadMB)<<20, logger)
	assistantHandler := handlers.NewAssistantHandler(assistantService, logger)

	// --- Router Setup ---
	r := mux.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RecoverPanic(logger))
	r.Use(middleware.Logging(logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); _, _ = w.Write([]byte("OK")) }).Methods("GET")

	r.HandleFunc("/projects", projectHandler.ListProjects).Methods("GET")
	r.HandleFunc("/projects", projectHandler.CreateProject).Methods("POST")
	r.HandleFunc("/projects/{id:[0-9]+}", projectHandler.RenameProject).Methods("PUT")
	r.HandleFunc("/projects/{id:[0-9]+}", projectHandler.DeleteProject).Methods("DELETE")
	r.HandleFunc("/projects/{id:[0-9]+}/chats", chatHandler.CreateChatInProject).Methods("POST")

	r.HandleFunc("/chats", chatHandler.ListChats).Methods("GET")
	r.HandleFunc("/chats", chatHandler.CreateChat).Methods("POST")
	r.HandleFunc("/chats/{id:[0-9]+}", chatHandler.RenameChat).Methods("PUT")
	r.HandleFunc("/chats/{id:[0-9]+}", chatHandler.DeleteChat).Methods("DELETE")
	r.HandleFunc("/chats/{id:[0-9]+}/messages", chatHandler.SetMessages).Methods("POST")
	r.HandleFunc("/chats/{id:[0-9]+}/export", chatHandler.ExportChat).Methods("GET")
	r.HandleFunc("/chats/{id:[0-9]+}/pdfs", fileHandler.ListChatFiles).Methods("GET")

	r.HandleFunc("/upload/{chatId:[0-9]+}", fileHandler.Upload).Methods("POST")
	r.HandleFunc("/files/{id:[0-9]+}", fileHandler.Download).Methods("GET")
	r.HandleFunc("/files/{id:[0-9]+}", fileHandler.DeleteFile).Methods("DELETE")

	r.HandleFunc("/api/ask", assistantHandler.Ask).Methods("POST")
	r.HandleFunc("/api/generate-infographic", assistantHandler.GenerateInfographic).Methods("POST")
	r.HandleFunc("/api/set-openai-key", assistantHandler.SetAPIKey).Methods("POST")

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		MaxAge:         86400,
	})

	// --- Server Configuration ---
	port := ":" + cfg.ServerPort
	srv := &http.Server{
		Addr:    port,
		Handler: corsWrapper.Handler(r),
	}

	logger.Info("server starting", "port", port, "database", cfg.DatabasePath)

	// --- Start Server in Goroutine ---
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("server stopped")
}
