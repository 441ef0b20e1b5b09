// hoofprint-refresh runs one recalibration pipeline pass and exits. Intended
// for cron so the morning dashboard opens on fresh missions.
package main

import (
	"log"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/mariselli/hoofprint/internal/brain"
	"github.com/mariselli/hoofprint/internal/config"
	"github.com/mariselli/hoofprint/internal/crm"
	"github.com/mariselli/hoofprint/internal/llm"
	"github.com/mariselli/hoofprint/internal/memory"
	"github.com/mariselli/hoofprint/internal/storage"
	"github.com/mariselli/hoofprint/internal/storage/postgres"
	"github.com/mariselli/hoofprint/internal/storage/resilient"
	"github.com/mariselli/hoofprint/internal/storage/sqlite"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store := resilient.New(openRemote(cfg))
	defer store.Close()

	targets, err := config.LoadTargets(cfg.Pipeline.TargetsPath)
	if err != nil {
		log.Printf("Using built-in discovery targets: %v", err)
		targets = config.DefaultTargets()
	}

	gateway := llm.NewClient(llm.Config{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	})

	repo := crm.New(store)
	mem := memory.New(store)
	core := brain.New(gateway, repo, mem, targets, cfg.Pipeline, nil)

	started := time.Now()
	if !core.RunOnce() {
		log.Fatal("Another recalibration is already running")
	}
	log.Printf("Recalibration finished in %s", time.Since(started).Round(time.Second))
}

func openRemote(cfg *config.Config) storage.Store {
	switch cfg.Storage.StorageEngine {
	case "postgres":
		remote, err := postgres.New(cfg.Storage.PostgresDSN)
		if err != nil {
			log.Printf("Postgres unavailable, continuing on local mirror: %v", err)
			return nil
		}
		return remote
	case "memory":
		return nil
	default:
		remote, err := sqlite.New(cfg.Storage.DataPath + "/hoofprint.db")
		if err != nil {
			log.Printf("SQLite unavailable, continuing on local mirror: %v", err)
			return nil
		}
		return remote
	}
}
