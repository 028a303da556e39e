package sqlite

import (
	"encoding/hex"
	"strings"
	"time"

	sqlgen "github.com/ekaya-inc/ekaya-sampler/pkg/sql"
)

// Dialect generates SQLite syntax.
type Dialect struct{}

func (Dialect) Name() string          { return "sqlite" }
func (Dialect) DefaultSchema() string { return "main" }

func (Dialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (Dialect) StringLiteral(v string) string { return sqlgen.QuoteString(v) }

// BoolLiteral uses integers; SQLite has no boolean storage class.
func (Dialect) BoolLiteral(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func (Dialect) BytesLiteral(v []byte) string {
	return "X'" + strings.ToUpper(hex.EncodeToString(v)) + "'"
}

// TimeLiteral writes times as text in the layout go-sqlite3 itself uses,
// so they read back as the same time.Time.
func (Dialect) TimeLiteral(declaredType string, v time.Time) string {
	if strings.EqualFold(declaredType, "date") {
		return sqlgen.QuoteString(v.Format("2006-01-02"))
	}
	return sqlgen.QuoteString(v.Format("2006-01-02 15:04:05.999999999-07:00"))
}

var _ sqlgen.Dialect = Dialect{}
