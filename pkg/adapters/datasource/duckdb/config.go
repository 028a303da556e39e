package duckdb

// Config contains DuckDB connection options.
type Config struct {
	// Path is the database file; empty or ":memory:" opens an in-memory database.
	Path string
	// AccessMode is "automatic", "read_only" or "read_write".
	AccessMode string
}

// FromMap creates a Config from a generic config map.
func FromMap(config map[string]any) (*Config, error) {
	cfg := &Config{}

	if path, ok := config["path"].(string); ok && path != ":memory:" {
		cfg.Path = path
	}
	if mode, ok := config["access_mode"].(string); ok {
		cfg.AccessMode = mode
	}

	return cfg, nil
}
