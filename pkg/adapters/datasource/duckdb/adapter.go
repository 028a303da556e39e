package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-sampler/pkg/adapters/datasource"
	sqlgen "github.com/ekaya-inc/ekaya-sampler/pkg/sql"
)

// Adapter provides DuckDB connectivity for sampling.
type Adapter struct {
	config *Config
	db     *sql.DB
	logger *zap.Logger
}

func buildDSN(cfg *Config) string {
	if cfg.AccessMode == "" {
		return cfg.Path
	}
	query := url.Values{}
	query.Add("access_mode", cfg.AccessMode)
	return cfg.Path + "?" + query.Encode()
}

// NewAdapter opens the DuckDB database at cfg.Path, or an in-memory database.
// All connections of the handle share one database instance.
func NewAdapter(ctx context.Context, cfg *Config, logger *zap.Logger) (*Adapter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("duckdb", buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open duckdb database: %w", err)
	}

	return &Adapter{
		config: cfg,
		db:     db,
		logger: logger.Named("duckdb"),
	}, nil
}

// TestConnection verifies the database can be opened and queried.
func (a *Adapter) TestConnection(ctx context.Context) error {
	if err := a.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// Dialect returns the DuckDB dialect.
func (a *Adapter) Dialect() sqlgen.Dialect {
	return Dialect{}
}

// Close releases the database handle.
func (a *Adapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

var _ datasource.SampleSource = (*Adapter)(nil)
