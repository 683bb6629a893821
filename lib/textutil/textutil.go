package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeKey produces the canonical form used in record keys:
// lowercased with all whitespace removed.
func NormalizeKey(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// NormalizeSpace lowercases and collapses runs of whitespace into a
// single space, preserving word boundaries. Used for vocabulary
// matching where "No  Habilitado" and "no habilitado" must compare equal.
func NormalizeSpace(s string) string {
	s = strings.ToLower(s)
	s = strings.Trim(s, " \n\t")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return s
}
