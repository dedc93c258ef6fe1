package slug

import (
	"strconv"
	"strings"
	"unicode"
)

// Derive builds a URL-safe slug from a display name and the upstream
// numeric id. The same inputs always produce the same slug, so repeated
// syncs of one upstream record never mint new identifiers.
func Derive(name string, apiID int64) string {
	base := Normalize(name)
	if base == "" {
		base = "item"
	}
	return base + "-" + strconv.FormatInt(apiID, 10)
}

// Normalize lowercases the input and collapses every run of
// non-alphanumeric characters into a single dash.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}

	return strings.Trim(b.String(), "-")
}
