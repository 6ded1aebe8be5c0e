package parsing

import (
	"regexp"
	"strings"
)

var (
	nonNameRe    = regexp.MustCompile(`[^A-Za-zÀ-ÿ -]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	hyphenRunRe  = regexp.MustCompile(`-+`)
)

// NormalizeName turns a free-form payee name into a filename-safe token:
// everything that is not a Latin letter (accents included), a space, or a
// hyphen is dropped, whitespace runs collapse to one space, and the remaining
// spaces become hyphens. Hyphen runs collapse so the result round-trips
// through the function unchanged. An input that normalizes to nothing
// returns "".
func NormalizeName(raw string) string {
	name := nonNameRe.ReplaceAllString(raw, "")
	name = strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " "))
	name = strings.ReplaceAll(name, " ", "-")
	return strings.Trim(hyphenRunRe.ReplaceAllString(name, "-"), "-")
}
