package main

import (
	"context"
	"log"

	"github.com/neverlost-dev/neverlost-api/internal/server"
	"github.com/neverlost-dev/neverlost-api/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
