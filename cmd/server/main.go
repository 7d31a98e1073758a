package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/opennote-dev/opennote/internal/server"
	"github.com/opennote-dev/opennote/internal/server/config"
)

func main() {

	ctx := context.Background()

	// optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
