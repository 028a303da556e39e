package duckdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/ekaya-inc/ekaya-sampler/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-sampler/pkg/models"
	sqlgen "github.com/ekaya-inc/ekaya-sampler/pkg/sql"
)

const tableExistsQuery = `
	SELECT COUNT(*)
	FROM information_schema.tables
	WHERE table_schema = ?
	  AND table_name = ?`

const columnsQuery = `
	SELECT column_name, data_type
	FROM information_schema.columns
	WHERE table_schema = ?
	  AND table_name = ?
	ORDER BY ordinal_position`

func (a *Adapter) resolve(table models.TableRef) models.TableRef {
	return table.WithDefaultSchema(Dialect{}.DefaultSchema())
}

// TableExists reports whether a table or view with this name exists.
func (a *Adapter) TableExists(ctx context.Context, table models.TableRef) (bool, error) {
	table = a.resolve(table)

	var count int
	if err := a.db.QueryRowContext(ctx, tableExistsQuery, table.Schema, table.Name).Scan(&count); err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return count > 0, nil
}

// RowCount returns COUNT(*) of the table.
func (a *Adapter) RowCount(ctx context.Context, table models.TableRef) (int64, error) {
	query := "SELECT COUNT(*) FROM " + sqlgen.QualifiedName(Dialect{}, table)

	var count int64
	if err := a.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("query row count: %w", err)
	}
	return count, nil
}

// Columns returns the table's columns in ordinal order with their
// information_schema data types, e.g. "DECIMAL(10,2)" or "INTEGER[]".
func (a *Adapter) Columns(ctx context.Context, table models.TableRef) ([]models.Column, error) {
	table = a.resolve(table)

	rows, err := a.db.QueryContext(ctx, columnsQuery, table.Schema, table.Name)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	var columns []models.Column
	for rows.Next() {
		var col models.Column
		if err := rows.Scan(&col.Name, &col.DataType); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}

	return columns, nil
}

// ScanRows streams the table through fn.
// Columns whose type involves a MAP are read as their VARCHAR cast: the driver
// decodes maps into Go maps with no literal form, while DuckDB casts its own
// text form back into the declared MAP type on insert.
func (a *Adapter) ScanRows(ctx context.Context, table models.TableRef, fn datasource.RowFunc) error {
	columns, err := a.Columns(ctx, table)
	if err != nil {
		return err
	}
	query := "SELECT " + selectList(columns) + " FROM " + sqlgen.QualifiedName(Dialect{}, table)
	return datasource.ScanSQLRows(ctx, a.db, query, normalizeValue, fn)
}

func selectList(columns []models.Column) string {
	d := Dialect{}
	items := make([]string, len(columns))
	for i, col := range columns {
		name := d.QuoteIdentifier(col.Name)
		if strings.Contains(strings.ToUpper(col.DataType), "MAP(") {
			items[i] = "CAST(" + name + " AS VARCHAR) AS " + name
			continue
		}
		items[i] = name
	}
	return strings.Join(items, ", ")
}
