package postgres

import (
	"context"
	"fmt"

	"github.com/ekaya-inc/ekaya-sampler/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-sampler/pkg/models"
	sqlgen "github.com/ekaya-inc/ekaya-sampler/pkg/sql"
)

// Relations that can be read with SELECT: tables, views, materialized views,
// foreign tables and partitioned tables.
const relationExistsQuery = `
	SELECT EXISTS (
		SELECT 1
		FROM pg_catalog.pg_class c
		JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1
		  AND c.relname = $2
		  AND c.relkind IN ('r', 'v', 'm', 'f', 'p')
	)`

// format_type renders the declared type including modifiers,
// e.g. "character varying(20)" or "numeric(10,2)".
const columnsQuery = `
	SELECT a.attname, pg_catalog.format_type(a.atttypid, a.atttypmod)
	FROM pg_catalog.pg_attribute a
	JOIN pg_catalog.pg_class c ON c.oid = a.attrelid
	JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
	WHERE n.nspname = $1
	  AND c.relname = $2
	  AND a.attnum > 0
	  AND NOT a.attisdropped
	ORDER BY a.attnum`

func (a *Adapter) resolve(table models.TableRef) models.TableRef {
	return table.WithDefaultSchema(Dialect{}.DefaultSchema())
}

// TableExists reports whether a readable relation with this name exists.
func (a *Adapter) TableExists(ctx context.Context, table models.TableRef) (bool, error) {
	table = a.resolve(table)

	var exists bool
	if err := a.pool.QueryRow(ctx, relationExistsQuery, table.Schema, table.Name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return exists, nil
}

// RowCount returns COUNT(*) of the table.
func (a *Adapter) RowCount(ctx context.Context, table models.TableRef) (int64, error) {
	query := "SELECT COUNT(*) FROM " + sqlgen.QualifiedName(Dialect{}, table)

	var count int64
	if err := a.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("query row count: %w", err)
	}
	return count, nil
}

// Columns returns the table's columns in ordinal order.
func (a *Adapter) Columns(ctx context.Context, table models.TableRef) ([]models.Column, error) {
	table = a.resolve(table)

	rows, err := a.pool.Query(ctx, columnsQuery, table.Schema, table.Name)
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

// ScanRows streams SELECT * of the table through fn.
func (a *Adapter) ScanRows(ctx context.Context, table models.TableRef, fn datasource.RowFunc) error {
	query := "SELECT * FROM " + sqlgen.QualifiedName(Dialect{}, table)

	rows, err := a.pool.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	typeMap := rows.Conn().TypeMap()

	var pos int64
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return fmt.Errorf("failed to read row values: %w", err)
		}

		row := make(models.Row, len(values))
		for i, v := range values {
			row[i], err = normalizeValue(typeMap, fields[i].DataTypeOID, v)
			if err != nil {
				return fmt.Errorf("column %s: %w", fields[i].Name, err)
			}
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
