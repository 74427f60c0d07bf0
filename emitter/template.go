package emitter

var handlerTemplate = `// Code generated by emit-handler from {{ .Source }}; DO NOT EDIT.

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

// restaurantConfig is the minified menu configuration ({{ .Items }} items in {{ .Categories }} categories):
//
{{- range .Contents }}
//	{{ . }}
{{- end }}
const restaurantConfig = {{ quote .Menu }}

func main() {
	configPath := flag.String("config", config.DefaultConfigFile, "path to the yaml config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	menu, err := models.Parse([]byte(restaurantConfig))
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := agent.Serve(ctx, cfg, menu); err != nil {
		log.Fatalf("failed to run the chat server: %v", err)
	}
}
`
