package legacy

import "strings"

// Delimiters are the field separators of the legacy format.
const Delimiters = " ,\t"

// Tokenize trims line and splits it on any of [Delimiters], dropping empty
// fields. An empty or all-delimiter line yields an empty slice.
func Tokenize(line string) []string {
	fields := strings.FieldsFunc(strings.TrimSpace(line), func(r rune) bool {
		return strings.ContainsRune(Delimiters, r)
	})
	if fields == nil {
		return []string{}
	}
	return fields
}

// isComment reports whether a tokenized line is a comment.
func isComment(tokens []string) bool {
	return len(tokens) > 0 && strings.HasPrefix(tokens[0], "#")
}
