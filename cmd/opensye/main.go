package main

import (
	"log"

	"opensye/internal/cli"
	"opensye/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("Fatal Error: %v", err)
	}

	cli.Execute()
}
