package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ekaya-inc/ekaya-sampler/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-sampler/pkg/models"
	sqlgen "github.com/ekaya-inc/ekaya-sampler/pkg/sql"
)

// Tables and views share one namespace per schema with other schema-scoped objects.
const objectExistsQuery = `
	SELECT COUNT(*)
	FROM sys.objects o
	JOIN sys.schemas s ON s.schema_id = o.schema_id
	WHERE s.name = @schema
	  AND o.name = @table
	  AND o.type IN ('U', 'V')`

const columnsQuery = `
	SELECT c.name, t.name, t.is_user_defined, c.max_length, c.precision, c.scale
	FROM sys.columns c
	JOIN sys.types t ON t.user_type_id = c.user_type_id
	WHERE c.object_id = OBJECT_ID(@qualified)
	ORDER BY c.column_id`

func (a *Adapter) resolve(table models.TableRef) models.TableRef {
	return table.WithDefaultSchema(Dialect{}.DefaultSchema())
}

// TableExists reports whether a table or view with this name exists.
func (a *Adapter) TableExists(ctx context.Context, table models.TableRef) (bool, error) {
	table = a.resolve(table)

	var count int
	err := a.db.QueryRowContext(ctx, objectExistsQuery,
		sql.Named("schema", table.Schema),
		sql.Named("table", table.Name),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return count > 0, nil
}

// RowCount returns COUNT_BIG(*) of the table.
func (a *Adapter) RowCount(ctx context.Context, table models.TableRef) (int64, error) {
	query := "SELECT COUNT_BIG(*) FROM " + sqlgen.QualifiedName(Dialect{}, table)

	var count int64
	if err := a.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("query row count: %w", err)
	}
	return count, nil
}

// Columns returns the table's columns in column_id order with declared types
// rebuilt from sys.columns, e.g. "nvarchar(40)" or "decimal(10,2)".
func (a *Adapter) Columns(ctx context.Context, table models.TableRef) ([]models.Column, error) {
	qualified := sqlgen.QualifiedName(Dialect{}, table)

	rows, err := a.db.QueryContext(ctx, columnsQuery, sql.Named("qualified", qualified))
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	var columns []models.Column
	for rows.Next() {
		var (
			name, typeName   string
			userDefined      bool
			maxLength        int16
			precision, scale uint8
		)
		if err := rows.Scan(&name, &typeName, &userDefined, &maxLength, &precision, &scale); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		columns = append(columns, models.Column{
			Name:     name,
			DataType: declaredType(typeName, userDefined, maxLength, precision, scale),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}

	return columns, nil
}

// declaredType renders a sys.columns type with its length, precision or scale.
func declaredType(typeName string, userDefined bool, maxLength int16, precision, scale uint8) string {
	if userDefined {
		return Dialect{}.QuoteIdentifier(typeName)
	}

	t := strings.ToLower(typeName)
	switch t {
	case "varchar", "char", "varbinary", "binary":
		if maxLength == -1 {
			return t + "(max)"
		}
		return fmt.Sprintf("%s(%d)", t, maxLength)
	case "nvarchar", "nchar":
		if maxLength == -1 {
			return t + "(max)"
		}
		return fmt.Sprintf("%s(%d)", t, maxLength/2)
	case "decimal", "numeric":
		return fmt.Sprintf("%s(%d,%d)", t, precision, scale)
	case "datetime2", "datetimeoffset", "time":
		return fmt.Sprintf("%s(%d)", t, scale)
	case "timestamp", "rowversion":
		// Row versions are server-generated and cannot be inserted; keep the bytes.
		return "binary(8)"
	}
	return t
}

// ScanRows streams SELECT * of the table through fn.
func (a *Adapter) ScanRows(ctx context.Context, table models.TableRef, fn datasource.RowFunc) error {
	query := "SELECT * FROM " + sqlgen.QualifiedName(Dialect{}, table)
	return datasource.ScanSQLRows(ctx, a.db, query, normalizeValue, fn)
}
