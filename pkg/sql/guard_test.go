package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDeclaredType(t *testing.T) {
	valid := []string{
		"integer",
		"character varying(20)",
		"numeric(10, 2)",
		"timestamp with time zone",
		"text[]",
		"NVARCHAR(MAX)",
		"DECIMAL(18,3)",
		`"my_enum"`,
		`public."Mood"`,
		"  bigint  ",
	}
	for _, v := range valid {
		assert.NoError(t, ValidateDeclaredType(v), v)
	}

	invalid := []string{
		"",
		"   ",
		"int; DROP TABLE users",
		"int -- comment",
		"int /* x */",
		"varchar(10",
		"varchar)10(",
		"text DEFAULT 'x'",
		"int\nDROP TABLE x",
		`"unterminated`,
		`int\`,
	}
	for _, v := range invalid {
		assert.ErrorIs(t, ValidateDeclaredType(v), ErrUnsafeDeclaredType, v)
	}
}

func TestValidateDeclaredType_SemicolonInsideQuotedName(t *testing.T) {
	// A quoted user-defined type name may legally contain any character.
	assert.NoError(t, ValidateDeclaredType(`"odd;name"`))
}

func TestCheckForInjection(t *testing.T) {
	assert.Nil(t, CheckForInjection("column type", "12345"))

	result := CheckForInjection("column type", "'; DROP TABLE users--")
	require.NotNil(t, result)
	assert.True(t, result.IsSQLi)
	assert.NotEmpty(t, result.Fingerprint)
	assert.Equal(t, "column type", result.Field)
	assert.Equal(t, "'; DROP TABLE users--", result.Value)
}
