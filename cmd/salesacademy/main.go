package main

import (
	"github.com/joho/godotenv"

	"salesacademy/internal/cli"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cli.Execute()
}
