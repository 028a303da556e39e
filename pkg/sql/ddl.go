package sql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ekaya-inc/ekaya-sampler/pkg/models"
)

var (
	// ErrNoColumns is returned when a table definition has no columns.
	ErrNoColumns = errors.New("table has no columns")

	// ErrRowShape is returned when a row does not line up with the column list.
	ErrRowShape = errors.New("row does not match column list")
)

// CreateTableStatement builds a CREATE TABLE statement mirroring columns.
// Each column is emitted as its quoted name followed by its declared type,
// in order. No keys, constraints or defaults are carried over.
func CreateTableStatement(d Dialect, table models.TableRef, columns []models.Column) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("create %s: %w", table, ErrNoColumns)
	}

	defs := make([]string, len(columns))
	for i, col := range columns {
		if col.Name == "" {
			return "", fmt.Errorf("create %s: column %d has no name", table, i+1)
		}
		if err := ValidateDeclaredType(col.DataType); err != nil {
			return "", fmt.Errorf("create %s: column %s: %w", table, col.Name, err)
		}
		defs[i] = d.QuoteIdentifier(col.Name) + " " + strings.TrimSpace(col.DataType)
	}

	return fmt.Sprintf("CREATE TABLE %s (%s)", QualifiedName(d, table), strings.Join(defs, ", ")), nil
}

// InsertStatement builds a single-row INSERT of row into table.
// Values are rendered with FormatLiteral in column order.
func InsertStatement(d Dialect, table models.TableRef, columns []models.Column, row models.Row) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("insert into %s: %w", table, ErrNoColumns)
	}
	if len(row) != len(columns) {
		return "", fmt.Errorf("insert into %s: %w: %d values for %d columns", table, ErrRowShape, len(row), len(columns))
	}

	names := make([]string, len(columns))
	values := make([]string, len(columns))
	for i, col := range columns {
		lit, err := FormatLiteral(d, col, row[i])
		if err != nil {
			return "", fmt.Errorf("insert into %s: %w", table, err)
		}
		names[i] = d.QuoteIdentifier(col.Name)
		values[i] = lit
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		QualifiedName(d, table),
		strings.Join(names, ", "),
		strings.Join(values, ", "),
	), nil
}
