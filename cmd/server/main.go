package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/apetrovs/walletgate/internal/server"
	"github.com/apetrovs/walletgate/internal/server/config"
)

func main() {

	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
