package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	_ "github.com/microsoft/go-mssqldb"         // SQL Server driver
	_ "github.com/microsoft/go-mssqldb/azuread" // Azure AD support
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-sampler/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-sampler/pkg/config"
	sqlgen "github.com/ekaya-inc/ekaya-sampler/pkg/sql"
)

// Adapter provides SQL Server connectivity with SQL or Azure AD authentication.
type Adapter struct {
	config *Config
	db     *sql.DB
	logger *zap.Logger
}

// NewAdapter opens a SQL Server handle for cfg. Supports two authentication methods:
//  1. SQL Authentication (user/password)
//  2. Service Principal (Azure AD with client credentials)
func NewAdapter(ctx context.Context, cfg *Config, logger *zap.Logger) (*Adapter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	driverName, connStr, err := buildConnectionString(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", cfg.AuthMethod, err)
	}

	return &Adapter{
		config: cfg,
		db:     db,
		logger: logger.Named("mssql"),
	}, nil
}

// buildConnectionString returns the driver name and sqlserver:// URL for cfg.
// Service principal logins go through the azuresql driver with fedauth.
func buildConnectionString(cfg *Config) (string, string, error) {
	query := url.Values{}
	query.Add("database", cfg.Database)
	query.Add("encrypt", strconv.FormatBool(cfg.Encrypt))
	if cfg.TrustServerCertificate {
		query.Add("TrustServerCertificate", "true")
	}
	if cfg.ConnectionTimeout > 0 {
		query.Add("connection timeout", strconv.Itoa(cfg.ConnectionTimeout))
	}

	host := config.ResolveHostForDocker(cfg.Host)

	switch cfg.AuthMethod {
	case "sql":
		u := &url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(cfg.Username, cfg.Password),
			Host:     fmt.Sprintf("%s:%d", host, cfg.Port),
			RawQuery: query.Encode(),
		}
		return "sqlserver", u.String(), nil

	case "service_principal":
		query.Add("fedauth", "ActiveDirectoryServicePrincipal")
		query.Add("user id", cfg.ClientID+"@"+cfg.TenantID)
		query.Add("password", cfg.ClientSecret)
		u := &url.URL{
			Scheme:   "sqlserver",
			Host:     fmt.Sprintf("%s:%d", host, cfg.Port),
			RawQuery: query.Encode(),
		}
		return "azuresql", u.String(), nil
	}

	return "", "", fmt.Errorf("unsupported auth method: %s", cfg.AuthMethod)
}

// TestConnection verifies the database is reachable with valid credentials.
func (a *Adapter) TestConnection(ctx context.Context) error {
	if err := a.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	var currentDB string
	if err := a.db.QueryRowContext(ctx, "SELECT DB_NAME()").Scan(&currentDB); err != nil {
		return fmt.Errorf("test query failed: %w", err)
	}
	if !strings.EqualFold(currentDB, a.config.Database) {
		return fmt.Errorf("connected to wrong database: expected %q but connected to %q", a.config.Database, currentDB)
	}

	return nil
}

// Dialect returns the T-SQL dialect.
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
