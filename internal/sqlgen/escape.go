package sqlgen

import "strings"

// literalReplacer prepares free text for embedding in a statement:
// em/en dashes normalize to plain hyphens and single quotes double.
var literalReplacer = strings.NewReplacer(
	"–", "-",
	"—", "-",
	"'", "''",
)

// Escape renders s as a quoted SQL string literal.
func Escape(s string) string {
	return "'" + literalReplacer.Replace(s) + "'"
}

// NullableString renders s as a quoted literal, or NULL when empty.
func NullableString(s string) string {
	if s == "" {
		return "NULL"
	}
	return Escape(s)
}
