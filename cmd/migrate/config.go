package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

var errNameRequired = errors.New("name is required for 'create' command")

func unknownCommandError(command string) error {
	return fmt.Errorf("unknown command %q: use up, down, status, create", command)
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}
