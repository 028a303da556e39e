package sql

import (
	"errors"
	"fmt"
	"strings"

	libinjection "github.com/corazawaf/libinjection-go"
)

// ErrUnsafeDeclaredType indicates a declared column type that cannot be
// spliced into a CREATE TABLE statement as-is.
var ErrUnsafeDeclaredType = errors.New("unsafe declared type")

// InjectionCheckResult contains the result of an injection check on a catalog value.
type InjectionCheckResult struct {
	IsSQLi      bool   // True if SQL injection pattern detected
	Fingerprint string // libinjection fingerprint of the detected pattern
	Field       string // What was checked, e.g. "column type"
	Value       string // The value that was checked
}

// CheckForInjection uses libinjection to detect SQL injection patterns in a
// value read from catalog metadata (column names, declared types).
// Returns nil if no injection is detected.
func CheckForInjection(field, value string) *InjectionCheckResult {
	isSQLi, fingerprint := libinjection.IsSQLi(value)
	if !isSQLi {
		return nil
	}
	return &InjectionCheckResult{
		IsSQLi:      true,
		Fingerprint: string(fingerprint),
		Field:       field,
		Value:       value,
	}
}

// ValidateDeclaredType checks that a declared type is a single type expression:
// non-empty, balanced parentheses, and no statement separators, comments
// or string literals.
//
// Accepted: "integer", "character varying(20)", "numeric(10, 2)",
// "timestamp with time zone", "text[]", "NVARCHAR(MAX)", `"my_enum"`.
func ValidateDeclaredType(declared string) error {
	declared = strings.TrimSpace(declared)
	if declared == "" {
		return fmt.Errorf("%w: empty", ErrUnsafeDeclaredType)
	}
	if strings.Contains(declared, "--") || strings.Contains(declared, "/*") {
		return fmt.Errorf("%w: %q contains a comment", ErrUnsafeDeclaredType, declared)
	}

	depth := 0
	inQuote := false
	for _, r := range declared {
		if inQuote {
			if r == '"' {
				inQuote = false
			}
			continue
		}
		switch {
		case r == '"':
			inQuote = true
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				return fmt.Errorf("%w: %q has unbalanced parentheses", ErrUnsafeDeclaredType, declared)
			}
		case r == ';' || r == '\'' || r == '\\':
			return fmt.Errorf("%w: %q contains %q", ErrUnsafeDeclaredType, declared, r)
		case r == '\n' || r == '\r':
			return fmt.Errorf("%w: %q spans lines", ErrUnsafeDeclaredType, declared)
		}
	}
	if inQuote || depth != 0 {
		return fmt.Errorf("%w: %q is not terminated", ErrUnsafeDeclaredType, declared)
	}
	return nil
}
