// Package sql generates the DDL and DML used to materialize sampled rows,
// and guards the pieces of it that come from catalog metadata.
package sql

import (
	"time"

	"github.com/ekaya-inc/ekaya-sampler/pkg/models"
)

// Dialect captures the syntax differences between datasources that matter
// when generating CREATE TABLE and INSERT statements.
// Each datasource adapter provides one.
type Dialect interface {
	// Name returns the datasource type, e.g. "postgres".
	Name() string

	// DefaultSchema is used when a table reference carries no schema.
	DefaultSchema() string

	// QuoteIdentifier quotes a table, schema or column name.
	QuoteIdentifier(name string) string

	// StringLiteral renders a character value.
	StringLiteral(v string) string

	// BoolLiteral renders a boolean value.
	BoolLiteral(v bool) string

	// BytesLiteral renders a binary value.
	BytesLiteral(v []byte) string

	// TimeLiteral renders a temporal value for a column of the given declared type.
	TimeLiteral(declaredType string, v time.Time) string
}

// QualifiedName returns the quoted, schema-qualified name of t.
// The dialect's default schema fills in an empty schema.
func QualifiedName(d Dialect, t models.TableRef) string {
	t = t.WithDefaultSchema(d.DefaultSchema())
	if t.Schema == "" {
		return d.QuoteIdentifier(t.Name)
	}
	return d.QuoteIdentifier(t.Schema) + "." + d.QuoteIdentifier(t.Name)
}
