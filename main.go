// Copyright (c) 2025 blotmap authors
// Licensed under the MIT License

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "blotmap/docs"
	"blotmap/internal/api"
	"blotmap/internal/atlas"
	"blotmap/internal/boundary"
	"blotmap/internal/cache"
	"blotmap/internal/config"
	"blotmap/internal/dataset"
	"blotmap/internal/library"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize cache for derived views
	cacheManager := cache.NewManager(cfg.CacheTTL)

	// Initialize the article library
	loader := dataset.NewLoader(cfg.DatasetSource, cfg.FetchTimeout)
	lib := library.New(loader, cacheManager, cfg.CacheTTL)

	// The server starts even when the dataset is unavailable; the page
	// reports the load error and a later refresh can recover.
	if err := lib.Load(context.Background()); err != nil {
		log.Printf("Warning: failed to load article dataset: %v", err)
	}

	// Country boundaries are best-effort: without them blobs render unclipped
	var boundaryIndex *boundary.Index
	if cfg.BoundarySource != "" {
		idx, err := boundary.Load(context.Background(), cfg.BoundarySource, cfg.FetchTimeout)
		if err != nil {
			log.Printf("Warning: country boundaries unavailable, blobs render unclipped: %v", err)
		} else {
			boundaryIndex = idx
			log.Printf("Loaded %d country boundaries from %s", idx.Count(), cfg.BoundarySource)
		}
	}

	// Initialize the blob map pipeline
	generator := atlas.NewGenerator(cfg.Blob, nil)
	clipper := atlas.NewBoundaryClipper(boundaryIndex)
	renderer := atlas.NewRenderer(generator, clipper, cfg.Map)

	// Initialize API server
	server := api.NewServer(lib, renderer, clipper, cacheManager, cfg)

	log.Printf("Starting Travel Map server on port %d", cfg.Port)
	log.Printf("Dataset source: %s", cfg.DatasetSource)
	log.Printf("Cache TTL: %v", cfg.CacheTTL)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Create a context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start signal handler in goroutine
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping services...")
		cancel() // Cancel the context to stop the server
	}()

	// Start the server with context for graceful shutdown
	if err := server.StartWithContext(ctx); err != nil && err != context.Canceled {
		log.Fatal("Failed to start server:", err)
	}
}
