package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/imkonsowa/menu-concierge/emitter"
)

func main() {
	in := flag.String("config", "restaurant-config.json", "restaurant config json to embed")
	out := flag.String("out", "generated/chat-handler/main.go", "where to write the generated handler")
	flag.Parse()

	size, err := emitter.EmitFile(*in, *out, emitter.Options{})
	if err != nil {
		log.Fatal(err)
	}

	slog.Info("handler created with embedded restaurant config", "out", *out, "bytes", size)
}
