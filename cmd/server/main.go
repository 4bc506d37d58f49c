package main

import (
	"crypto/tls"
	"flag"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"slidedeck/internal/catalog"
	"slidedeck/internal/config"
	"slidedeck/internal/db"
	"slidedeck/internal/handlers"
	"slidedeck/internal/llm"
	"slidedeck/internal/services"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file")
	flag.Parse()

	// .env values become env overrides; missing file is fine.
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	if err := db.InitDatabase(cfg.Library.DBPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize services
	catalogService := catalog.NewService(db.DB, filepath.Join(cfg.Library.DataDir, "templates"), cfg.Library.ExternalTemplatesPath)
	registry := llm.NewRegistry(llm.Options{
		OpenAI:     llm.Credentials(cfg.Providers.OpenAI),
		OpenRouter: llm.Credentials(cfg.Providers.OpenRouter),
		Anthropic:  llm.Credentials(cfg.Providers.Anthropic),
		Google:     llm.Credentials(cfg.Providers.Google),
		Timeout:    time.Duration(cfg.Generate.TimeoutSeconds) * time.Second,
	})
	if providers := registry.Available(); len(providers) == 0 {
		log.Printf("Warning: no completion provider configured, /api/generate will answer 503")
	} else {
		for _, p := range providers {
			log.Printf("Provider configured: id=%s, model=%s", p.ID, p.Model)
		}
	}
	sessionStore := services.NewSessionStore(services.DefaultSessionTTL)
	go sessionStore.Run()

	// Setup routes
	router := handlers.SetupRoutes(
		handlers.NewSessionHandler(sessionStore),
		handlers.NewGenerateHandler(registry, sessionStore, catalogService, cfg.Generate.RatePerMinute),
		handlers.NewExportHandler(sessionStore),
		handlers.NewCatalogHandler(catalogService),
		handlers.NewPresenterHandler(sessionStore),
		cfg.StaticDir,
	)

	// Configure server
	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	// Configure TLS if enabled
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{
			MinVersion: getTLSVersion(cfg.TLS.MinVersion),
		}

		log.Printf("Starting HTTPS server on %s", cfg.Addr())
		log.Printf("TLS Certificate: %s", cfg.TLS.CertFile)
		log.Printf("TLS Key: %s", cfg.TLS.KeyFile)
		log.Printf("TLS Min Version: %s", cfg.TLS.MinVersion)

		log.Fatal(server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile))
	} else {
		log.Printf("Starting HTTP server on %s", cfg.Addr())
		log.Printf("Warning: HTTP mode is not recommended for production")

		log.Fatal(server.ListenAndServe())
	}
}

// getTLSVersion converts string version to tls.Version constant
func getTLSVersion(version string) uint16 {
	switch version {
	case "1.0":
		return tls.VersionTLS10
	case "1.1":
		return tls.VersionTLS11
	case "1.2":
		return tls.VersionTLS12
	case "1.3":
		return tls.VersionTLS13
	default:
		return tls.VersionTLS12
	}
}
