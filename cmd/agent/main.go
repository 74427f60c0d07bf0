package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/imkonsowa/menu-concierge/agent"
	"github.com/imkonsowa/menu-concierge/config"
	"github.com/imkonsowa/menu-concierge/models"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigFile, "path to the yaml config file")
	menuPath := flag.String("menu", "", "path to the restaurant config json (overrides menu.path)")
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *menuPath != "" {
		cfg.Menu.Path = *menuPath
	}

	menu, err := models.Load(cfg.Menu.Path)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := agent.Serve(ctx, cfg, menu); err != nil {
		log.Fatalf("failed to run the agent: %v", err)
	}
}
