// Package config loads service configuration from config.yaml with
// environment overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr" validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds the optional run-history store settings. When Enabled
// is false the service keeps no history.
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"min=0,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// AuditConfig holds assessment behavior knobs.
type AuditConfig struct {
	// ReferenceYear anchors the unrealistic-age check. Zero means the
	// current calendar year; pin it for reproducible runs.
	ReferenceYear int `mapstructure:"reference_year" validate:"min=0"`
	// OutputDir is where the CLI writes text reports.
	OutputDir string `mapstructure:"output_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Audit    AuditConfig    `mapstructure:"audit"`
	Log      LogConfig      `mapstructure:"log"`
}

// Load reads config.yaml from configPath, applies CUSTAUDIT_-prefixed
// environment overrides, and validates the result. A missing file is fine;
// defaults plus env vars apply.
func Load(configPath string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.SetEnvPrefix("CUSTAUDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "custaudit")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("audit.reference_year", 0)
	v.SetDefault("audit.output_dir", "docs")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	// Map nested keys to flat env vars like CUSTAUDIT_DATABASE_HOST.
	for _, key := range []string{
		"server.addr",
		"database.enabled", "database.host", "database.port",
		"database.user", "database.password", "database.dbname", "database.sslmode",
		"audit.reference_year", "audit.output_dir",
		"log.level", "log.json",
	} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
