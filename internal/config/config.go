package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	DatabaseURL string `yaml:"database_url"`
	JWKSURL     string `yaml:"jwks_url"` // identity provider JWKS endpoint
	CORSOrigins string `yaml:"cors_origins"`
	TablePrefix string `yaml:"table_prefix"`
	LogDir      string `yaml:"log_dir"`       // empty = stdout only
	LogMaxFiles int    `yaml:"log_max_files"` // 0 = default of 10
	// Client-side storage configuration
	LocalStorePath  string `yaml:"local_store_path"`  // bbolt file for the local cache
	CloudBaseURL    string `yaml:"cloud_base_url"`    // empty = local-only mode
	LocalStoreQuota int64  `yaml:"local_store_quota"` // bytes, 0 = DefaultLocalStoreQuota
	// Debug flags
	Debug bool `yaml:"debug"`
}

// Load builds configuration from the environment, with an optional YAML
// overlay (COPYDESK_CONFIG, default copydesk.yaml) applied first so env
// vars always win.
func Load() *Config {
	cfg := &Config{}

	if overlay := getEnv("COPYDESK_CONFIG", "copydesk.yaml"); overlay != "" {
		if err := loadYAML(overlay, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "warning: config overlay %s: %v\n", overlay, err)
		}
	}

	env := getEnv("ENVIRONMENT", firstNonEmpty(cfg.Environment, "dev"))

	cfg.Port = getEnv("PORT", firstNonEmpty(cfg.Port, "8080"))
	cfg.Environment = env
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.JWKSURL = getEnv("JWKS_URL", cfg.JWKSURL)
	cfg.CORSOrigins = getEnv("CORS_ORIGINS", firstNonEmpty(cfg.CORSOrigins, "http://localhost:3000"))
	cfg.TablePrefix = getTablePrefix(env, cfg.TablePrefix)
	cfg.LocalStorePath = getEnv("LOCAL_STORE_PATH", firstNonEmpty(cfg.LocalStorePath, "copydesk.db"))
	cfg.CloudBaseURL = getEnv("CLOUD_BASE_URL", cfg.CloudBaseURL)
	cfg.LogDir = getEnv("LOG_DIR", cfg.LogDir)
	cfg.Debug = getEnv("DEBUG", getDefaultDebug(env)) == "true"

	if cfg.LocalStoreQuota <= 0 {
		cfg.LocalStoreQuota = DefaultLocalStoreQuota
	}
	if cfg.LogMaxFiles <= 0 {
		cfg.LogMaxFiles = 10
	}

	return cfg
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // overlay is optional
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env, overlay string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}
	if overlay != "" {
		return overlay
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
