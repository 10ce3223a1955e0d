package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/yt-viral/internal/api"
	"github.com/yt-viral/internal/config"
	"github.com/yt-viral/internal/finder"
	"github.com/yt-viral/internal/logger"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	f := finder.New(api.SourceFactoryFor(cfg), finder.WithLogger(zl))
	server := api.NewServer(cfg, f, zl)

	zl.InfoObj("server starting", "server_start", map[string]any{
		"port":    cfg.Port,
		"backend": cfg.Backend,
		"topics":  len(f.Topics()),
	})
	if err := server.Start(cfg.Port); err != nil {
		zl.ErrorObj("server stopped", "server_stop", map[string]any{"error": err})
		log.Fatalf("Failed to start server: %v", err)
	}
}
