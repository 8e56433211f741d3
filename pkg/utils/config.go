package utils

import (
	"fmt"
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"booklib/internal/password"
	"booklib/pkg/database"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	LibraryFile    string `env:"LIBRARY_FILE" envDefault:"library.txt"`
	Backend        string `env:"LIBRARY_BACKEND" envDefault:"file"`
	DBPath         string `env:"LIBRARY_DB_PATH"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"text"`
	PasswordLength int    `env:"PASSWORD_LENGTH"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch cfg.Backend {
	case BackendFile, BackendSQLite:
	default:
		return Config{}, fmt.Errorf("unknown LIBRARY_BACKEND %q (want %s or %s)", cfg.Backend, BackendFile, BackendSQLite)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = database.DefaultPath()
	}
	if cfg.PasswordLength <= 0 {
		cfg.PasswordLength = password.DefaultLength
	}

	return cfg, nil
}

func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return cfg
}
