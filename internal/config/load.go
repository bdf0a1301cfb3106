package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and, if present, a
// config.yaml in the working directory. Environment variables use the
// RECALL_ prefix with underscores for nesting (e.g. RECALL_SERVER_PORT,
// RECALL_DATABASE_URL) and take precedence over file values.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RECALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults carry it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	// Empty defaults register the keys so AutomaticEnv can populate them
	// during Unmarshal; validation rejects them if they stay empty.
	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("scheduler.max_box", 4)
	v.SetDefault("scheduler.box_interval_seconds", []int{10, 20, 40, 80})
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	// One interval per box; the struct tags cannot express this
	// cross-field constraint.
	if len(cfg.Scheduler.BoxIntervalSeconds) != cfg.Scheduler.MaxBox {
		return fmt.Errorf(
			"config validation failed: scheduler.box_interval_seconds must have exactly %d entries, got %d",
			cfg.Scheduler.MaxBox, len(cfg.Scheduler.BoxIntervalSeconds))
	}
	return nil
}
