// Package sqlbuilder holds the placeholder and identifier helpers shared
// by the backend adapters.
package sqlbuilder

import "regexp"

type PlaceholderStyle int

const (
	PlaceholderQuestion PlaceholderStyle = iota
	PlaceholderDollar
)

// Placeholder renders the n-th (1-based) bind placeholder in the style the
// backend expects: ?n for sqlite, $n for postgres.
func Placeholder(style PlaceholderStyle, n int) string {
	if style == PlaceholderDollar {
		return "$" + itoa(n)
	}
	return "?" + itoa(n)
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdent reports whether s is safe to embed as a quoted SQL identifier.
func ValidIdent(s string) bool {
	return identRe.MatchString(s)
}

// QuoteIdent wraps a validated identifier in double quotes.
// Callers must check ValidIdent first; the identifier contains no quotes.
func QuoteIdent(s string) string {
	return `"` + s + `"`
}

// itoa converts int to string without fmt overhead
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [32]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + (n % 10))
		n /= 10
	}
	return string(buf[i:])
}
