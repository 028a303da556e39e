package models

import "strings"

// TableRef identifies a table inside a datasource.
// Schema may be empty, in which case the datasource's default schema applies.
type TableRef struct {
	Schema string `json:"schema,omitempty" yaml:"schema,omitempty"`
	Name   string `json:"name" yaml:"name"`
}

// ParseTableRef splits "schema.table" into its parts.
// A bare name yields a TableRef with the given default schema.
func ParseTableRef(name, defaultSchema string) TableRef {
	name = strings.TrimSpace(name)
	if i := strings.LastIndex(name, "."); i > 0 && i < len(name)-1 {
		return TableRef{Schema: name[:i], Name: name[i+1:]}
	}
	return TableRef{Schema: defaultSchema, Name: name}
}

// WithDefaultSchema returns a copy of t with schema filled in when it is empty.
func (t TableRef) WithDefaultSchema(schema string) TableRef {
	if t.Schema == "" {
		t.Schema = schema
	}
	return t
}

// String returns the unquoted schema-qualified name, for logs and messages only.
func (t TableRef) String() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// Column describes one column of a table as declared in the source catalog.
// DataType is the declared type name exactly as the datasource reports it
// (e.g. "integer", "character varying(20)", "NVARCHAR(50)").
type Column struct {
	Name     string `json:"name" yaml:"name"`
	DataType string `json:"data_type" yaml:"data_type"`
}

// Row is one row of a table, aligned 1:1 with the table's []Column.
type Row []any

// ColumnNames returns the names of columns in order.
func ColumnNames(columns []Column) []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return names
}
