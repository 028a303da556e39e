package datasource

import (
	"context"

	"github.com/ekaya-inc/ekaya-sampler/pkg/models"
	sqlgen "github.com/ekaya-inc/ekaya-sampler/pkg/sql"
)

// ConnectionTester tests database connectivity.
// Each implementation owns its connection and must be closed when done.
type ConnectionTester interface {
	// TestConnection verifies the database is reachable with valid credentials.
	// Returns nil if connection is healthy, error otherwise.
	TestConnection(ctx context.Context) error

	// Close releases the database connection.
	Close() error
}

// RowFunc receives each row of a scan with its zero-based stream position.
// Returning an error stops the scan and is returned from ScanRows.
type RowFunc func(pos int64, row models.Row) error

// SourceReader reads the population being sampled.
type SourceReader interface {
	// TableExists reports whether the table exists. An empty schema means the default schema.
	TableExists(ctx context.Context, table models.TableRef) (bool, error)

	// RowCount returns the number of rows in the table.
	RowCount(ctx context.Context, table models.TableRef) (int64, error)

	// Columns returns the table's columns in ordinal order with their declared types.
	Columns(ctx context.Context, table models.TableRef) ([]models.Column, error)

	// ScanRows streams every row of the table once, in the table's natural order.
	// Values are aligned with Columns.
	ScanRows(ctx context.Context, table models.TableRef, fn RowFunc) error
}

// StatementExecutor runs DDL/DML generated by the materializer.
type StatementExecutor interface {
	// Execute runs a single statement.
	Execute(ctx context.Context, statement string) error

	// ExecuteBatch submits statements together, in order.
	// Execution stops at the first failing statement.
	ExecuteBatch(ctx context.Context, statements []string) error
}

// SampleSource is everything the sampler needs from a datasource.
type SampleSource interface {
	ConnectionTester
	SourceReader
	StatementExecutor

	// Dialect returns the SQL dialect used to generate statements for this datasource.
	Dialect() sqlgen.Dialect
}
