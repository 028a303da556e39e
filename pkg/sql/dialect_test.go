package sql

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/ekaya-inc/ekaya-sampler/pkg/models"
)

// ansiDialect is a minimal dialect for exercising statement generation.
type ansiDialect struct{}

func (ansiDialect) Name() string          { return "ansi" }
func (ansiDialect) DefaultSchema() string { return "public" }

func (ansiDialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (ansiDialect) StringLiteral(v string) string { return QuoteString(v) }

func (ansiDialect) BoolLiteral(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

func (ansiDialect) BytesLiteral(v []byte) string {
	return "X'" + hex.EncodeToString(v) + "'"
}

func (ansiDialect) TimeLiteral(declaredType string, v time.Time) string {
	if strings.EqualFold(declaredType, "date") {
		return QuoteString(v.Format("2006-01-02"))
	}
	return QuoteString(v.Format("2006-01-02 15:04:05.999999Z07:00"))
}

var _ Dialect = ansiDialect{}

func col(name, dataType string) models.Column {
	return models.Column{Name: name, DataType: dataType}
}
