package postgres

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	sqlgen "github.com/ekaya-inc/ekaya-sampler/pkg/sql"
)

// Dialect generates PostgreSQL syntax.
type Dialect struct{}

func (Dialect) Name() string          { return "postgres" }
func (Dialect) DefaultSchema() string { return "public" }

// QuoteIdentifier double-quotes name, doubling embedded quotes.
func (Dialect) QuoteIdentifier(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func (Dialect) StringLiteral(v string) string { return sqlgen.QuoteString(v) }

func (Dialect) BoolLiteral(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

func (Dialect) BytesLiteral(v []byte) string {
	return `'\x` + hex.EncodeToString(v) + `'::bytea`
}

// TimeLiteral formats v to match the column's declared type. Zone offsets are
// kept only for zoned types so the server does not shift the value.
func (Dialect) TimeLiteral(declaredType string, v time.Time) string {
	t := strings.ToLower(declaredType)
	zoned := strings.Contains(t, "with time zone") || strings.HasSuffix(t, "tz")

	var layout string
	switch {
	case t == "date":
		layout = "2006-01-02"
	case strings.HasPrefix(t, "timestamp"):
		layout = "2006-01-02 15:04:05.999999"
	case strings.HasPrefix(t, "time"):
		layout = "15:04:05.999999"
	default:
		layout = "2006-01-02 15:04:05.999999"
		zoned = true
	}
	if zoned {
		layout += "Z07:00"
	}
	return sqlgen.QuoteString(v.Format(layout))
}

var _ sqlgen.Dialect = Dialect{}
