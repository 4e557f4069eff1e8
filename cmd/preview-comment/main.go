package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/previewops/preview-comment/internal/cli"
)

func main() {
	// Load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	if err := cli.Execute(os.Args[1:]); err != nil {
		log.Fatalf("preview-comment failed: %v", err)
	}
}
