package mssql

import (
	"database/sql"
	"strings"

	sqlgen "github.com/ekaya-inc/ekaya-sampler/pkg/sql"
)

// normalizeValue converts exact numerics, which the driver reports as their
// textual form in a []byte, to sqlgen.Numeric. Everything else passes through.
func normalizeValue(col *sql.ColumnType, v any) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}

	switch strings.ToUpper(col.DatabaseTypeName()) {
	case "DECIMAL", "NUMERIC", "MONEY", "SMALLMONEY":
		return sqlgen.Numeric(string(b))
	}
	return v
}
