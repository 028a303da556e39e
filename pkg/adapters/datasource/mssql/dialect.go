package mssql

import (
	"encoding/hex"
	"strings"
	"time"

	sqlgen "github.com/ekaya-inc/ekaya-sampler/pkg/sql"
)

// Dialect generates T-SQL.
type Dialect struct{}

func (Dialect) Name() string          { return "mssql" }
func (Dialect) DefaultSchema() string { return "dbo" }

// QuoteIdentifier brackets name the way QUOTENAME does, escaping ] as ]].
func (Dialect) QuoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

// StringLiteral always uses the N'' form so nvarchar data keeps its characters.
func (Dialect) StringLiteral(v string) string {
	return "N" + sqlgen.QuoteString(v)
}

func (Dialect) BoolLiteral(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func (Dialect) BytesLiteral(v []byte) string {
	return "0x" + strings.ToUpper(hex.EncodeToString(v))
}

// TimeLiteral uses ISO 8601 forms, which SQL Server parses independently of
// DATEFORMAT and language settings.
func (Dialect) TimeLiteral(declaredType string, v time.Time) string {
	t := strings.ToLower(declaredType)
	var layout string
	switch {
	case t == "date":
		layout = "2006-01-02"
	case strings.HasPrefix(t, "datetimeoffset"):
		layout = "2006-01-02T15:04:05.9999999Z07:00"
	case strings.HasPrefix(t, "datetime2"):
		layout = "2006-01-02T15:04:05.9999999"
	case t == "datetime", t == "smalldatetime":
		layout = "2006-01-02T15:04:05.999"
	case strings.HasPrefix(t, "time"):
		layout = "15:04:05.9999999"
	default:
		layout = "2006-01-02T15:04:05.9999999Z07:00"
	}
	return sqlgen.QuoteString(v.Format(layout))
}

var _ sqlgen.Dialect = Dialect{}
