package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/authservice/internal/flagx"
	"github.com/joho/godotenv"
)

// loadDotEnv loads the file named by -env-file, or ./.env when present,
// into the process environment. Variables already set win.
func loadDotEnv() {
	path := flagx.EnvFileFlag(args())
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
		return
	}

	if err := godotenv.Load(path); err != nil {
		panic(err)
	}
}

// parseEnv overlays AUTH_* environment variables. Unset variables leave the
// field untouched.
func parseEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
