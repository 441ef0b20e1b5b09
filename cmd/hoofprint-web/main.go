package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/mariselli/hoofprint/internal/brain"
	"github.com/mariselli/hoofprint/internal/config"
	"github.com/mariselli/hoofprint/internal/crm"
	"github.com/mariselli/hoofprint/internal/llm"
	"github.com/mariselli/hoofprint/internal/mailer"
	"github.com/mariselli/hoofprint/internal/memory"
	"github.com/mariselli/hoofprint/internal/server"
	"github.com/mariselli/hoofprint/internal/storage"
	"github.com/mariselli/hoofprint/internal/storage/postgres"
	"github.com/mariselli/hoofprint/internal/storage/resilient"
	"github.com/mariselli/hoofprint/internal/storage/sqlite"
	"github.com/mariselli/hoofprint/web/handlers"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store := resilient.New(openRemote(cfg))
	defer store.Close()

	targets := loadTargets(cfg)

	gateway := llm.NewClient(llm.Config{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	})

	repo := crm.New(store)
	mem := memory.New(store)
	mail := mailer.New(cfg.Mail)
	hub := handlers.NewWebSocketHub(cfg.Server.Port)
	core := brain.New(gateway, repo, mem, targets, cfg.Pipeline, hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr, err := server.Start(ctx, cfg, server.Deps{
		Repo:   repo,
		Memory: mem,
		Brain:  core,
		Mailer: mail,
		Hub:    hub,
	})
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Printf("Hoofprint dashboard API running at http://%s", addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")
	cancel()
	time.Sleep(1 * time.Second) // Give time for connections to close
}

// openRemote builds the remote store for the configured engine. A nil return
// means memory-only mode: the resilient wrapper serves everything from its
// in-process mirror.
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

// loadTargets reads the discovery plan, falling back to the built-in one.
func loadTargets(cfg *config.Config) *config.Targets {
	targets, err := config.LoadTargets(cfg.Pipeline.TargetsPath)
	if err != nil {
		log.Printf("Using built-in discovery targets: %v", err)
		return config.DefaultTargets()
	}
	return targets
}
