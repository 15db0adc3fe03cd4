package errors

import (
	"strings"
	"unicode"
)

// tokenDelimiters are the field separators of the legacy text format.
const tokenDelimiters = " ,\t"

// ValidateToken checks that value can be written as a single field of the
// legacy text format and read back unchanged.
//
// The rules follow the legacy tokenizer:
//   - No empty values
//   - No delimiters (space, comma, tab)
//   - No control characters
//   - No leading '#', which would turn the line into a comment
func ValidateToken(kind, value string) error {
	if value == "" {
		return New(ErrCodeInvalidValue, "%s cannot be empty", kind)
	}

	if strings.ContainsAny(value, tokenDelimiters) {
		return New(ErrCodeInvalidValue, "%s %q contains a field delimiter", kind, value)
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidValue, "%s %q contains control characters", kind, value)
		}
	}

	if strings.HasPrefix(value, "#") {
		return New(ErrCodeInvalidValue, "%s %q starts with a comment marker", kind, value)
	}

	return nil
}
