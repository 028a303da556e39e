package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultConfigPath is read when no explicit path is given and the file exists.
const DefaultConfigPath = "config.yaml"

// Config holds all configuration for ekaya-sampler.
// Configuration can come from a YAML file or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords) must only come from environment variables.
type Config struct {
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Datasource holding both the source table and the destination of a materialized sample
	Datasource DatasourceConfig `yaml:"datasource"`

	Sampling SamplingConfig `yaml:"sampling"`
}

// DatasourceConfig describes the database connection.
// Host/port style fields apply to postgres and mssql; Path applies to sqlite and duckdb.
type DatasourceConfig struct {
	Type     string `yaml:"type" env:"DATASOURCE_TYPE" env-default:"postgres"`
	Host     string `yaml:"host" env:"DATASOURCE_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DATASOURCE_PORT"`
	User     string `yaml:"user" env:"DATASOURCE_USER"`
	Password string `yaml:"-" env:"DATASOURCE_PASSWORD"` // Secret - not in YAML
	Database string `yaml:"database" env:"DATASOURCE_DATABASE"`
	SSLMode  string `yaml:"ssl_mode" env:"DATASOURCE_SSL_MODE"`
	Path     string `yaml:"path" env:"DATASOURCE_PATH"`

	// SQL Server only: sql or service_principal
	AuthMethod   string `yaml:"auth_method" env:"DATASOURCE_AUTH_METHOD"`
	TenantID     string `yaml:"tenant_id" env:"DATASOURCE_TENANT_ID"`
	ClientID     string `yaml:"client_id" env:"DATASOURCE_CLIENT_ID"`
	ClientSecret string `yaml:"-" env:"DATASOURCE_CLIENT_SECRET"` // Secret - not in YAML
}

// SamplingConfig holds defaults for sample requests.
type SamplingConfig struct {
	// SourceSchema qualifies unqualified source table names; empty means the dialect default.
	SourceSchema string `yaml:"source_schema" env:"SAMPLING_SOURCE_SCHEMA"`
	// DestinationSchema qualifies unqualified destination names; empty means the dialect default.
	DestinationSchema string `yaml:"destination_schema" env:"SAMPLING_DESTINATION_SCHEMA"`
	// InsertBatchSize is the number of INSERT statements sent per batch in materialize mode.
	InsertBatchSize int    `yaml:"insert_batch_size" env:"SAMPLING_INSERT_BATCH_SIZE" env-default:"500"`
	OutputFormat    string `yaml:"output_format" env:"SAMPLING_OUTPUT_FORMAT" env-default:"table"`
}

// Load reads configuration from the YAML file at path with environment variable overrides.
// An empty path falls back to DefaultConfigPath when that file exists, and to
// environment variables alone otherwise.
// The version parameter is injected at build time and set on the returned Config.
func Load(path, version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if path == "" {
		if _, err := os.Stat(DefaultConfigPath); err == nil {
			path = DefaultConfigPath
		}
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Datasource.Type == "" {
		return errors.New("datasource.type is required")
	}
	if c.Sampling.InsertBatchSize <= 0 {
		return fmt.Errorf("sampling.insert_batch_size must be positive, got %d", c.Sampling.InsertBatchSize)
	}
	return nil
}

// ToMap converts the datasource settings to the generic map consumed by
// the adapters' FromMap parsers. Empty values are omitted so adapter
// defaults apply.
func (d *DatasourceConfig) ToMap() map[string]any {
	m := make(map[string]any)
	set := func(key, value string) {
		if value != "" {
			m[key] = value
		}
	}

	set("host", d.Host)
	set("user", d.User)
	set("password", d.Password)
	set("database", d.Database)
	set("ssl_mode", d.SSLMode)
	set("path", d.Path)
	set("auth_method", d.AuthMethod)
	set("tenant_id", d.TenantID)
	set("client_id", d.ClientID)
	set("client_secret", d.ClientSecret)
	if d.Port > 0 {
		m["port"] = d.Port
	}

	return m
}
