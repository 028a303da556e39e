package sqlite

import "fmt"

// Config contains SQLite connection options.
type Config struct {
	// Path is the database file, or ":memory:" for a private in-memory database.
	Path string
	// BusyTimeoutMS is how long a statement waits on a locked database.
	BusyTimeoutMS int
}

// DefaultBusyTimeoutMS returns the default busy timeout in milliseconds.
func DefaultBusyTimeoutMS() int {
	return 5000
}

// FromMap creates a Config from a generic config map.
func FromMap(config map[string]any) (*Config, error) {
	cfg := &Config{
		BusyTimeoutMS: DefaultBusyTimeoutMS(),
	}

	path, ok := config["path"].(string)
	if !ok || path == "" {
		return nil, fmt.Errorf("path is required")
	}
	cfg.Path = path

	switch timeout := config["busy_timeout_ms"].(type) {
	case int:
		cfg.BusyTimeoutMS = timeout
	case float64:
		cfg.BusyTimeoutMS = int(timeout)
	}

	return cfg, nil
}
