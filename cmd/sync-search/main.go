package main

import (
	"context"
	"log"
	"time"

	"campushub/internal/config"
	"campushub/internal/database"
	"campushub/internal/logger"
	"campushub/internal/repository"
	"campushub/internal/search"
)

// Reindexes every event into Elasticsearch. Run after enabling search
// on an existing database or after an index mapping change.
func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if !cfg.Elasticsearch.Enabled() {
		log.Fatal("ELASTICSEARCH_URL is not set")
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	searchClient, err := search.NewElasticsearchClient(cfg.Elasticsearch)
	if err != nil {
		log.Fatalf("Failed to connect to Elasticsearch: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	events := repository.NewEventRepository(db)
	all, err := events.ListAll(ctx)
	if err != nil {
		log.Fatalf("Failed to list events: %v", err)
	}

	indexed := 0
	for i := range all {
		if err := searchClient.IndexEvent(ctx, &all[i]); err != nil {
			log.Printf("Failed to index event %d: %v", all[i].ID, err)
			continue
		}
		indexed++
	}

	log.Printf("Reindex complete: %d/%d events indexed", indexed, len(all))
}
