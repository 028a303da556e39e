package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-sampler/pkg/adapters/datasource"
	sqlgen "github.com/ekaya-inc/ekaya-sampler/pkg/sql"
)

// Adapter provides SQLite connectivity for sampling.
type Adapter struct {
	config *Config
	db     *sql.DB
	logger *zap.Logger
}

func buildDSN(cfg *Config) string {
	query := url.Values{}
	query.Add("_busy_timeout", strconv.Itoa(cfg.BusyTimeoutMS))
	return "file:" + cfg.Path + "?" + query.Encode()
}

// NewAdapter opens the SQLite database at cfg.Path.
// The handle is limited to one connection: an in-memory database exists only
// on the connection that created it, and SQLite serializes writers anyway.
func NewAdapter(ctx context.Context, cfg *Config, logger *zap.Logger) (*Adapter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)

	return &Adapter{
		config: cfg,
		db:     db,
		logger: logger.Named("sqlite"),
	}, nil
}

// TestConnection verifies the database can be opened and queried.
func (a *Adapter) TestConnection(ctx context.Context) error {
	var result int
	if err := a.db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("test query failed: %w", err)
	}
	return nil
}

// Dialect returns the SQLite dialect.
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
