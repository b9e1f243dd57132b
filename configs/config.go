package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// Config reads a key from the environment, loading .env on first use.
func Config(key string) string {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})

	return os.Getenv(key)
}

// ConfigOr reads a key, falling back to def when unset.
func ConfigOr(key, def string) string {
	if v := Config(key); v != "" {
		return v
	}
	return def
}
