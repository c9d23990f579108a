package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config file. Environment variables use the FREQUENCY_ prefix with
// underscores separating nested keys (e.g. FREQUENCY_SERVER_PORT) and
// take precedence over values from the config file.
// Returns a populated Config struct or an error if loading or validation
// fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for settings that have sensible out-of-the-box values.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("blob.bucket", "frequency-audio")
	v.SetDefault("blob.use_ssl", false)
	v.SetDefault("llm.text_model", "gemini-2.0-flash")
	v.SetDefault("llm.speech_model", "gemini-2.5-flash-preview-tts")
	v.SetDefault("llm.voice_name", "Kore")
	v.SetDefault("llm.max_retries", 2)
	v.SetDefault("llm.retry_delay_seconds", 1)
	v.SetDefault("study.catalog_path", "data/words.json")
	v.SetDefault("study.default_queue_size", 20)
	v.SetDefault("study.max_queue_size", 100)

	// Optional config file in the working directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing config file is fine; environment variables may supply
		// everything.
	}

	// Environment variables override file values.
	v.SetEnvPrefix("FREQUENCY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Viper only maps environment variables onto keys it already knows
	// about, so bind the ones that have no default explicitly.
	for _, key := range []string{
		"database.url",
		"blob.endpoint",
		"blob.access_key",
		"blob.secret_key",
		"llm.gemini_api_key",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
