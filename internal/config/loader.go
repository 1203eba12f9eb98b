package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envAliases lets the deployment-specific variable names used by hosting
// platforms stand in for the BOT_* ones.
var envAliases = map[string][]string{
	"telegram.token":       {"BOT_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN", "TELOXIDE_TOKEN"},
	"telegram.webhook_url": {"BOT_TELEGRAM_WEBHOOK_URL", "WEBHOOK_URL"},
	"server.port":          {"BOT_SERVER_PORT", "PORT"},
	"server.host":          {"BOT_SERVER_HOST", "HOST"},
}

// LoadConfig loads and validates configuration from, in increasing priority:
//  1. default values
//  2. the YAML file at path (optional; a missing file is not an error)
//  3. BOT_* environment variables and their aliases
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		slog.Debug("Configuration file not found, using defaults and environment", "path", path)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks struct tags and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	seen := make(map[int64]struct{}, len(c.Calibration.Points))
	for _, p := range c.Calibration.Points {
		if _, dup := seen[p.UserID]; dup {
			return fmt.Errorf("%w: duplicate calibration point for user id %d", ErrValidation, p.UserID)
		}
		seen[p.UserID] = struct{}{}
	}

	return nil
}
