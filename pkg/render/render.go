// Package render writes sampled rows for display.
package render

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
	"unicode"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ekaya-inc/ekaya-sampler/pkg/models"
)

// Output formats accepted by New.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Renderer receives the column header once, then the selected rows in stream order.
// Flush must be called after the last row.
type Renderer interface {
	Header(columns []models.Column) error
	Row(row models.Row) error
	Flush() error
}

// New returns a renderer for format writing to w. An empty format means table.
func New(format string, w io.Writer) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", FormatTable:
		return &tableRenderer{tw: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}, nil
	case FormatJSON:
		return &documentRenderer{w: w, encode: encodeJSON}, nil
	case FormatYAML:
		return &documentRenderer{w: w, encode: encodeYAML}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q: use 'table', 'json' or 'yaml'", format)
	}
}

// ValidateFormat reports whether format is accepted by New.
func ValidateFormat(format string) error {
	_, err := New(format, io.Discard)
	return err
}

type tableRenderer struct {
	tw      *tabwriter.Writer
	columns int
}

func (r *tableRenderer) Header(columns []models.Column) error {
	r.columns = len(columns)
	if r.columns == 0 {
		return nil
	}
	names := models.ColumnNames(columns)
	for i, name := range names {
		names[i] = escapeCell(name)
	}
	if _, err := fmt.Fprintln(r.tw, strings.Join(names, "\t|\t")); err != nil {
		return err
	}
	return nil
}

func (r *tableRenderer) Row(row models.Row) error {
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = escapeCell(FormatValue(v))
	}
	_, err := fmt.Fprintln(r.tw, strings.Join(cells, "\t|\t"))
	return err
}

func (r *tableRenderer) Flush() error {
	return r.tw.Flush()
}

// escapeCell spells out control characters so a value stays on one line
// and inside its column.
func escapeCell(s string) string {
	if strings.IndexFunc(s, unicode.IsControl) < 0 {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case unicode.IsControl(r):
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// document is the json/yaml shape: column order is kept by listing columns
// once and emitting rows as positional arrays.
type document struct {
	Columns []models.Column `json:"columns" yaml:"columns"`
	Rows    [][]any         `json:"rows" yaml:"rows"`
}

type documentRenderer struct {
	w      io.Writer
	encode func(io.Writer, *document) error
	doc    document
}

func (r *documentRenderer) Header(columns []models.Column) error {
	r.doc.Columns = columns
	r.doc.Rows = make([][]any, 0)
	return nil
}

func (r *documentRenderer) Row(row models.Row) error {
	out := make([]any, len(row))
	for i, v := range row {
		out[i] = documentValue(v)
	}
	r.doc.Rows = append(r.doc.Rows, out)
	return nil
}

func (r *documentRenderer) Flush() error {
	return r.encode(r.w, &r.doc)
}

func encodeJSON(w io.Writer, doc *document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func encodeYAML(w io.Writer, doc *document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// documentValue keeps JSON/YAML-native scalars and stringifies everything else.
func documentValue(v any) any {
	switch x := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return x
	case float32:
		return documentValue(float64(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return FormatValue(x)
		}
		return x
	default:
		return FormatValue(v)
	}
}

// FormatValue renders a single value for display.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return x
	case []byte:
		return `\x` + hex.EncodeToString(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case [16]byte:
		return uuid.UUID(x).String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}
