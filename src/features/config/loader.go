package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML file from the given path and returns a new Manager.
// If the file doesn't exist, creates a default configuration.
func Load(path string) (*Manager, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("Config file not found, creating default configuration", "path", path)
		defaultCfg := createDefaultConfig()

		if err := saveDefaultConfig(path, defaultCfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}

		slog.Info("Default configuration created successfully", "path", path)
		return NewManager(defaultCfg), nil
	}

	cfg, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	return NewManager(cfg), nil
}

// readConfig decodes and validates the file at path. Missing keys keep their
// default values, so a partial config file is fine.
func readConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := createDefaultConfig()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Override with environment variables if set
	if token := os.Getenv("TELEGRAM_TOKEN"); token != "" {
		cfg.Telegram.Token = token
	}
	if baseURL := os.Getenv("LYRICO_PROVIDER_URL"); baseURL != "" {
		cfg.Provider.BaseURL = baseURL
	}

	return cfg, nil
}

// createDefaultConfig creates a new Config with sensible default values
func createDefaultConfig() *Config {
	return &Config{
		Server: Server{
			PrintRoutes: false,
			Port:        3636,
		},
		Logger: Logger{
			Enabled: true,
			Level:   "info",
			Format:  "text",
		},
		Telegram: Telegram{
			Enabled:      false,
			Token:        "", // Can be obtained with https://t.me/BotFather
			AllowedUsers: []string{"user1"},
		},
		Provider: Provider{
			BaseURL:   "https://lrclib.net",
			UserAgent: "Lyrico/1.0",
		},
		Client: Client{
			EnableCache:          true,
			CacheTTLMs:           300000,
			EnableRateLimit:      true,
			MaxRequestsPerMinute: 60,
			RequestTimeoutMs:     10000,
		},
	}
}

// saveDefaultConfig saves the default configuration to the specified file path
func saveDefaultConfig(path string, cfg *Config) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()
	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	slog.Info("Default configuration saved", "path", path)
	return nil
}
