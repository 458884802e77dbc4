package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"storeops/internal/app/server"
	"storeops/internal/platform/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()
	if err := server.Run(context.Background(), cfg); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
