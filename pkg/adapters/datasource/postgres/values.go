package postgres

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	sqlgen "github.com/ekaya-inc/ekaya-sampler/pkg/sql"
)

// normalizeValue turns a decoded pgx value into something pkg/sql can render
// as a literal PostgreSQL will accept for the same column type.
//
// Scalars pass through. Numerics become sqlgen.Numeric so they stay exact.
// JSON, arrays, ranges, intervals and other composite values are re-encoded
// in PostgreSQL text format and inserted as quoted strings.
func normalizeValue(typeMap *pgtype.Map, oid uint32, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch oid {
	case pgtype.NumericOID:
		if n, ok := v.(pgtype.Numeric); ok {
			dv, err := n.Value()
			if err != nil {
				return nil, fmt.Errorf("read numeric: %w", err)
			}
			if dv == nil {
				return nil, nil
			}
			return sqlgen.Numeric(fmt.Sprint(dv)), nil
		}
	case pgtype.JSONOID, pgtype.JSONBOID:
		return encodeText(typeMap, oid, v)
	}

	switch v.(type) {
	case bool, string, []byte, time.Time, [16]byte,
		int8, int16, int32, int64, float32, float64:
		return v, nil
	}

	return encodeText(typeMap, oid, v)
}

func encodeText(typeMap *pgtype.Map, oid uint32, v any) (any, error) {
	buf, err := typeMap.Encode(oid, pgtype.TextFormatCode, v, nil)
	if err != nil {
		return nil, fmt.Errorf("encode value as text: %w", err)
	}
	if buf == nil {
		return nil, nil
	}
	return string(buf), nil
}
