package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/applybureau/bureau/internal/bureau/cli"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Fatalf("bureau: %v", err)
	}
}
