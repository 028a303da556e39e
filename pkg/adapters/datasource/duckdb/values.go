package duckdb

import (
	"database/sql"
	"fmt"
	"math/big"
	"strings"

	"github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	sqlgen "github.com/ekaya-inc/ekaya-sampler/pkg/sql"
)

// normalizeValue maps DuckDB driver types onto values pkg/sql renders as
// literals DuckDB reads back into the same column type.
func normalizeValue(col *sql.ColumnType, v any) any {
	switch x := v.(type) {
	case duckdb.Decimal:
		return decimalToNumeric(x)
	case *big.Int: // HUGEINT, UHUGEINT
		if x == nil {
			return nil
		}
		return sqlgen.Numeric(x.String())
	case duckdb.Interval:
		return fmt.Sprintf("%d months %d days %d microseconds", x.Months, x.Days, x.Micros)
	case []byte:
		if len(x) == 16 && strings.EqualFold(col.DatabaseTypeName(), "UUID") {
			id, err := uuid.FromBytes(x)
			if err == nil {
				return id
			}
		}
	}
	return v
}

// decimalToNumeric renders an unscaled integer and scale as an exact decimal string.
func decimalToNumeric(d duckdb.Decimal) any {
	if d.Value == nil {
		return nil
	}

	digits := new(big.Int).Abs(d.Value).String()
	scale := int(d.Scale)
	if scale > 0 {
		if len(digits) <= scale {
			digits = strings.Repeat("0", scale-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-scale] + "." + digits[len(digits)-scale:]
	}
	if d.Value.Sign() < 0 {
		digits = "-" + digits
	}
	return sqlgen.Numeric(digits)
}
