package appconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/funthingsnearme/nearby/internal/app/appcontext"
)

func Parse(ctx appcontext.Ctx) (*Config, error) {
	// .env is optional for a client binary: most users configure nothing at
	// all and live on the defaults.
	_ = godotenv.Load(".env")

	var config ConfigSpec
	err := envconfig.Process("nearby", &config)
	if err != nil {
		_ = envconfig.Usage("nearby", &config)
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if config.DataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate user config dir: %w", err)
		}
		config.DataDir = filepath.Join(base, "nearby")
	}
	if err := os.MkdirAll(config.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	return &Config{
		ConfigSpec: config,
		AppContext: ctx,
	}, nil
}
