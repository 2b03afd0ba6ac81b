package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"copydesk/internal/config"
	"copydesk/internal/domain/services"
	"copydesk/internal/repository/postgres"
	"copydesk/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	userID := flag.String("user-id", "", "Owner of the seeded project (default SEED_USER_ID env)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: Cannot run --drop-tables in production environment")
	}

	owner := *userID
	if owner == "" {
		owner = os.Getenv("SEED_USER_ID")
	}
	if owner == "" && !*schemaOnly {
		log.Fatalf("seed needs an owner: pass --user-id or set SEED_USER_ID")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("Ensuring database schema is up to date...")
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

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

	// Create services
	contentAnalyzer := service.NewContentAnalyzer()
	projectService := service.NewProjectService(projectRepo, folderRepo, docRepo, personaRepo, snippetRepo, voiceRepo, logger)
	folderService := service.NewFolderService(folderRepo, docRepo, logger)
	docService := service.NewDocumentService(docRepo, folderRepo, contentAnalyzer, logger)
	snippetService := service.NewSnippetService(snippetRepo, logger)

	// Seed a starter project with a small folder tree and example content
	project, err := projectService.CreateProject(ctx, &services.CreateProjectRequest{
		UserID: owner,
		Name:   "Starter Project",
	})
	if err != nil {
		log.Fatalf("Failed to create project: %v", err)
	}
	log.Printf("Created project %s (%s)", project.Name, project.ID)

	campaigns, err := folderService.CreateFolder(ctx, &services.CreateFolderRequest{
		ProjectID: project.ID,
		Name:      "Campaigns",
	})
	if err != nil {
		log.Fatalf("Failed to create folder: %v", err)
	}

	launch, err := folderService.CreateFolder(ctx, &services.CreateFolderRequest{
		ProjectID: project.ID,
		Name:      "Spring Launch",
		ParentID:  &campaigns.ID,
	})
	if err != nil {
		log.Fatalf("Failed to create folder: %v", err)
	}

	for _, seed := range seedDocuments(project.ID, launch.ID) {
		doc, err := docService.CreateDocument(ctx, seed)
		if err != nil {
			log.Printf("Failed to create document '%s': %v", seed.Title, err)
			continue
		}
		log.Printf("Created document %s (words: %d)", doc.Title, doc.Metadata.WordCount)
	}

	for _, seed := range seedSnippets(project.ID) {
		snippet, err := snippetService.CreateSnippet(ctx, seed)
		if err != nil {
			log.Printf("Failed to create snippet '%s': %v", seed.Name, err)
			continue
		}
		log.Printf("Created snippet %s", snippet.Name)
	}

	log.Println("Seeding complete!")
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.BrandVoices,
		tables.Snippets,
		tables.Personas,
		tables.Documents,
		tables.Folders,
		tables.Projects,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  Dropped %s", table)
	}

	return nil
}

func seedDocuments(projectID, folderID string) []*services.CreateDocumentRequest {
	return []*services.CreateDocumentRequest{
		{
			ProjectID: projectID,
			FolderID:  &folderID,
			Title:     "Landing Page Hero",
			Content:   "<h1>Write better copy, faster</h1><p>Draft, refine, and version every headline in one place.</p>",
			Tags:      []string{"landing-page", "hero"},
		},
		{
			ProjectID: projectID,
			FolderID:  &folderID,
			Title:     "Announcement Email",
			Content:   "<p>Hi there,</p><p>We just shipped something we think you'll love. The spring release is live today.</p>",
			Tags:      []string{"email"},
		},
		{
			ProjectID: projectID,
			Title:     "Scratch Pad",
			Content:   "<p>Loose ideas and phrases to reuse later.</p>",
		},
	}
}

func seedSnippets(projectID string) []*services.CreateSnippetRequest {
	return []*services.CreateSnippetRequest{
		{
			ProjectID: projectID,
			Name:      "CTA - Start Trial",
			Content:   "Start your free 14-day trial. No credit card required.",
			Tags:      []string{"cta"},
		},
		{
			ProjectID: projectID,
			Name:      "Unsubscribe Footer",
			Content:   "You're receiving this because you signed up for product updates. Unsubscribe anytime.",
			Tags:      []string{"email", "footer"},
		},
	}
}
