package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"copydesk/internal/auth"
	"copydesk/internal/config"
	"copydesk/internal/handler"
	"copydesk/internal/middleware"
	"copydesk/internal/repository/postgres"
	"copydesk/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging, optionally teeing into a rotating log dir
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier backed by the identity provider's JWKS endpoint
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	projectRepo := postgres.NewProjectRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)
	personaRepo := postgres.NewPersonaRepository(repoConfig)
	snippetRepo := postgres.NewSnippetRepository(repoConfig)
	voiceRepo := postgres.NewBrandVoiceRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create services
	contentAnalyzer := service.NewContentAnalyzer()
	projectService := service.NewProjectService(projectRepo, folderRepo, docRepo, personaRepo, snippetRepo, voiceRepo, logger)
	folderService := service.NewFolderService(folderRepo, docRepo, logger)
	docService := service.NewDocumentService(docRepo, folderRepo, contentAnalyzer, logger)
	personaService := service.NewPersonaService(personaRepo, logger)
	snippetService := service.NewSnippetService(snippetRepo, logger)
	migrationService := service.NewMigrationService(txManager, projectRepo, folderRepo, docRepo, personaRepo, snippetRepo, voiceRepo, logger)

	// Create handlers
	projectHandler := handler.NewProjectHandler(projectService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	docHandler := handler.NewDocumentHandler(docService, logger)
	personaHandler := handler.NewPersonaHandler(personaService, logger)
	snippetHandler := handler.NewSnippetHandler(snippetService, logger)
	migrateHandler := handler.NewMigrateHandler(migrationService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", projectHandler.HealthCheck)

	// Project routes
	mux.HandleFunc("GET /api/db/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/db/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/db/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("PATCH /api/db/projects/{id}", projectHandler.UpdateProject)
	mux.HandleFunc("DELETE /api/db/projects/{id}", projectHandler.DeleteProject)

	// Brand voice singleton
	mux.HandleFunc("PUT /api/db/projects/{id}/brand-voice", projectHandler.SetBrandVoice)
	mux.HandleFunc("GET /api/db/projects/{id}/brand-voice", projectHandler.GetBrandVoice)
	mux.HandleFunc("DELETE /api/db/projects/{id}/brand-voice", projectHandler.ClearBrandVoice)

	// Folder routes
	mux.HandleFunc("POST /api/db/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/db/folders", folderHandler.ListChildren)
	mux.HandleFunc("GET /api/db/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/db/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/db/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("GET /api/db/folders/{id}/descendants", folderHandler.ListDescendants)

	// Document routes
	mux.HandleFunc("POST /api/db/documents", docHandler.CreateDocument)
	mux.HandleFunc("GET /api/db/documents/versions", docHandler.ListVersions) // Must come before {id} route
	mux.HandleFunc("GET /api/db/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("PATCH /api/db/documents/{id}", docHandler.UpdateDocument)
	mux.HandleFunc("DELETE /api/db/documents/{id}", docHandler.DeleteDocument)
	mux.HandleFunc("POST /api/db/documents/{id}/versions", docHandler.CreateVersion)

	// Persona routes
	mux.HandleFunc("POST /api/db/personas", personaHandler.CreatePersona)
	mux.HandleFunc("GET /api/db/personas", personaHandler.ListPersonas)
	mux.HandleFunc("GET /api/db/personas/{id}", personaHandler.GetPersona)
	mux.HandleFunc("PATCH /api/db/personas/{id}", personaHandler.UpdatePersona)
	mux.HandleFunc("DELETE /api/db/personas/{id}", personaHandler.DeletePersona)

	// Snippet routes
	mux.HandleFunc("POST /api/db/snippets", snippetHandler.CreateSnippet)
	mux.HandleFunc("GET /api/db/snippets", snippetHandler.ListSnippets)
	mux.HandleFunc("GET /api/db/snippets/{id}", snippetHandler.GetSnippet)
	mux.HandleFunc("PATCH /api/db/snippets/{id}", snippetHandler.UpdateSnippet)
	mux.HandleFunc("DELETE /api/db/snippets/{id}", snippetHandler.DeleteSnippet)
	mux.HandleFunc("POST /api/db/snippets/{id}/use", snippetHandler.RecordUsage)

	// One-shot local-to-cloud migration intake
	mux.HandleFunc("POST /api/db/migrate", migrateHandler.Import)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server, shut down cleanly on SIGINT/SIGTERM
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}
}
