package sql

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ekaya-inc/ekaya-sampler/pkg/models"
)

// NullLiteral is emitted for nil values regardless of dialect.
const NullLiteral = "NULL"

// Numeric carries an exact decimal value in its textual form.
// Adapters convert driver-specific decimal types to Numeric so the value
// is emitted unquoted and without a round trip through float64.
type Numeric string

var numericPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// QuoteString renders s as a standard SQL string literal.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// FormatLiteral renders v as a SQL literal suitable for a column of col's declared type.
//
// Numbers and booleans are emitted bare, strings are quoted, binary and temporal
// values use the dialect's syntax, JSON documents are serialized and quoted.
// Anything else falls back to its quoted textual form.
func FormatLiteral(d Dialect, col models.Column, v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return NullLiteral, nil
	case Numeric:
		if numericPattern.MatchString(string(x)) {
			return string(x), nil
		}
		return QuoteString(string(x)), nil // NaN, Infinity
	case bool:
		return d.BoolLiteral(x), nil
	case int:
		return strconv.FormatInt(int64(x), 10), nil
	case int8:
		return strconv.FormatInt(int64(x), 10), nil
	case int16:
		return strconv.FormatInt(int64(x), 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float32:
		return formatFloat(float64(x), 32), nil
	case float64:
		return formatFloat(x, 64), nil
	case string:
		return d.StringLiteral(x), nil
	case []byte:
		return d.BytesLiteral(x), nil
	case json.RawMessage:
		return d.StringLiteral(string(x)), nil
	case time.Time:
		return d.TimeLiteral(col.DataType, x), nil
	case uuid.UUID:
		return QuoteString(x.String()), nil
	case [16]byte:
		return QuoteString(uuid.UUID(x).String()), nil
	case map[string]any, []any:
		doc, err := json.Marshal(x)
		if err != nil {
			return "", fmt.Errorf("encode %s value as json: %w", col.Name, err)
		}
		return d.StringLiteral(string(doc)), nil
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil {
			return "", fmt.Errorf("read %s value: %w", col.Name, err)
		}
		if _, again := dv.(driver.Valuer); again {
			return d.StringLiteral(fmt.Sprint(dv)), nil
		}
		return FormatLiteral(d, col, dv)
	case fmt.Stringer:
		return d.StringLiteral(x.String()), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return NullLiteral, nil
		}
		return FormatLiteral(d, col, rv.Elem().Interface())
	case reflect.Array:
		// Driver-specific UUID types are fixed 16-byte arrays.
		if rv.Len() == 16 && rv.Type().Elem().Kind() == reflect.Uint8 {
			var b [16]byte
			reflect.Copy(reflect.ValueOf(&b).Elem(), rv)
			return QuoteString(uuid.UUID(b).String()), nil
		}
	}

	return d.StringLiteral(fmt.Sprint(v)), nil
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return QuoteString("NaN")
	case math.IsInf(f, 1):
		return QuoteString("Infinity")
	case math.IsInf(f, -1):
		return QuoteString("-Infinity")
	}
	return strconv.FormatFloat(f, 'g', -1, bitSize)
}
