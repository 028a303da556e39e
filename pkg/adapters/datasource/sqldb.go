package datasource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ekaya-inc/ekaya-sampler/pkg/models"
)

// ValueConverter normalizes a driver value before it leaves an adapter,
// e.g. turning a decimal reported as []byte into an exact numeric literal.
type ValueConverter func(col *sql.ColumnType, v any) any

// ScanSQLRows streams the result of query through fn, one row at a time,
// numbering rows from zero in the order the driver returns them.
// Used by the database/sql based adapters (mssql, sqlite, duckdb).
func ScanSQLRows(ctx context.Context, db *sql.DB, query string, convert ValueConverter, fn RowFunc) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return fmt.Errorf("failed to read column types: %w", err)
	}

	values := make([]any, len(colTypes))
	ptrs := make([]any, len(colTypes))
	for i := range values {
		ptrs[i] = &values[i]
	}

	var pos int64
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("failed to read row values: %w", err)
		}

		row := make(models.Row, len(values))
		for i, v := range values {
			if convert != nil {
				v = convert(colTypes[i], v)
			}
			row[i] = v
		}

		if err := fn(pos, row); err != nil {
			return err
		}
		pos++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}
	return nil
}

// ExecSQLBatch runs statements in order inside one transaction.
// The first failure rolls the batch back and is returned with the driver's message.
func ExecSQLBatch(ctx context.Context, db *sql.DB, statements []string) error {
	if len(statements) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("statement %d of %d: %w", i+1, len(statements), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}
