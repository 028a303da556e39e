package duckdb

import (
	"fmt"
	"strings"
	"time"

	sqlgen "github.com/ekaya-inc/ekaya-sampler/pkg/sql"
)

// Dialect generates DuckDB syntax.
type Dialect struct{}

func (Dialect) Name() string          { return "duckdb" }
func (Dialect) DefaultSchema() string { return "main" }

func (Dialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (Dialect) StringLiteral(v string) string { return sqlgen.QuoteString(v) }

func (Dialect) BoolLiteral(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

// BytesLiteral escapes every byte so the literal is independent of encoding.
func (Dialect) BytesLiteral(v []byte) string {
	var b strings.Builder
	b.WriteString("'")
	for _, c := range v {
		fmt.Fprintf(&b, `\x%02X`, c)
	}
	b.WriteString("'::BLOB")
	return b.String()
}

func (Dialect) TimeLiteral(declaredType string, v time.Time) string {
	t := strings.ToUpper(declaredType)
	var layout string
	switch {
	case t == "DATE":
		layout = "2006-01-02"
	case strings.HasPrefix(t, "TIMESTAMP WITH TIME ZONE"), t == "TIMESTAMPTZ":
		layout = "2006-01-02 15:04:05.999999Z07:00"
	case strings.HasPrefix(t, "TIMESTAMP"), strings.HasPrefix(t, "DATETIME"):
		layout = "2006-01-02 15:04:05.999999"
	case strings.HasPrefix(t, "TIME WITH TIME ZONE"), t == "TIMETZ":
		layout = "15:04:05.999999Z07:00"
	case strings.HasPrefix(t, "TIME"):
		layout = "15:04:05.999999"
	default:
		layout = "2006-01-02 15:04:05.999999Z07:00"
	}
	return sqlgen.QuoteString(v.Format(layout))
}

var _ sqlgen.Dialect = Dialect{}
