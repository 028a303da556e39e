package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ekaya-inc/ekaya-sampler/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-sampler/pkg/models"
	sqlgen "github.com/ekaya-inc/ekaya-sampler/pkg/sql"
)

// SQLite object names are case-insensitive.
const objectExistsQuery = `
	SELECT COUNT(*)
	FROM %s.sqlite_master
	WHERE type IN ('table', 'view')
	  AND name = ? COLLATE NOCASE`

const columnsQuery = `SELECT name, type FROM pragma_table_info(?, ?) ORDER BY cid`

func (a *Adapter) resolve(table models.TableRef) models.TableRef {
	return table.WithDefaultSchema(Dialect{}.DefaultSchema())
}

// TableExists reports whether a table or view with this name exists in the schema.
func (a *Adapter) TableExists(ctx context.Context, table models.TableRef) (bool, error) {
	table = a.resolve(table)
	query := fmt.Sprintf(objectExistsQuery, Dialect{}.QuoteIdentifier(table.Schema))

	var count int
	if err := a.db.QueryRowContext(ctx, query, table.Name).Scan(&count); err != nil {
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

// Columns returns the table's columns in declaration order.
// A column declared without a type gets BLOB, which carries the same
// (absent) affinity.
func (a *Adapter) Columns(ctx context.Context, table models.TableRef) ([]models.Column, error) {
	table = a.resolve(table)

	rows, err := a.db.QueryContext(ctx, columnsQuery, table.Name, table.Schema)
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
		if strings.TrimSpace(col.DataType) == "" {
			col.DataType = "BLOB"
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}

	return columns, nil
}

// ScanRows streams the table through fn.
// Columns declared DATE, DATETIME or TIMESTAMP are read through a unary plus,
// which keeps the stored value and storage class but hides the declared type,
// so the driver hands back the stored text or number instead of parsing it
// into a time (and yielding the zero time when it cannot).
func (a *Adapter) ScanRows(ctx context.Context, table models.TableRef, fn datasource.RowFunc) error {
	columns, err := a.Columns(ctx, table)
	if err != nil {
		return err
	}
	query := "SELECT " + selectList(columns) + " FROM " + sqlgen.QualifiedName(Dialect{}, table)
	return datasource.ScanSQLRows(ctx, a.db, query, normalizeValue, fn)
}

// selectList quotes every column, passing time-declared ones through +.
func selectList(columns []models.Column) string {
	d := Dialect{}
	items := make([]string, len(columns))
	for i, col := range columns {
		name := d.QuoteIdentifier(col.Name)
		if isDriverTimeType(col.DataType) {
			items[i] = "+" + name + " AS " + name
			continue
		}
		items[i] = name
	}
	return strings.Join(items, ", ")
}

// isDriverTimeType reports the declared types go-sqlite3 converts to time.Time.
func isDriverTimeType(declared string) bool {
	switch strings.ToLower(strings.TrimSpace(declared)) {
	case "date", "datetime", "timestamp":
		return true
	}
	return false
}

// normalizeValue keeps text-affinity values as strings so they are not
// re-inserted as blobs.
func normalizeValue(col *sql.ColumnType, v any) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}

	declared := strings.ToUpper(col.DatabaseTypeName())
	if strings.Contains(declared, "CHAR") || strings.Contains(declared, "CLOB") || strings.Contains(declared, "TEXT") {
		return string(b)
	}
	return v
}
