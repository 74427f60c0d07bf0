package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/imkonsowa/menu-concierge/models"
)

func main() {
	in := flag.String("in", "restaurant-config.json", "restaurant config json")
	out := flag.String("out", "restaurant-config-minified.json", "minified output path")
	flag.Parse()

	size, err := models.MinifyFile(*in, *out)
	if err != nil {
		log.Fatal(err)
	}

	slog.Info("minified config created", "out", *out, "bytes", size)
}
