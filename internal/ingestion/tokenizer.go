package ingestion

import "strings"

// SplitLine splits one line of delimited text into trimmed fields. A double
// quote toggles quoted mode; inside quotes the delimiter is literal content.
// This deliberately matches the simple quote-toggle behaviour of the report
// exports rather than full RFC 4180 (doubled quotes are not an escape). The
// trailing field is always emitted, including when the line ends while still
// inside a quoted span, so malformed quoting shifts field boundaries instead
// of failing.
func SplitLine(line string, delim rune) []string {
	fields := make([]string, 0, 8)
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == delim && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// JoinLine is the inverse of SplitLine for well-formed values: fields that
// contain the delimiter are re-quoted so a later SplitLine yields the same
// logical field sequence.
func JoinLine(fields []string, delim rune) string {
	parts := make([]string, len(fields))
	for i, field := range fields {
		if strings.ContainsRune(field, delim) {
			parts[i] = `"` + field + `"`
		} else {
			parts[i] = field
		}
	}
	return strings.Join(parts, string(delim))
}
