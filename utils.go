package iniconfig

import (
	"strings"
	"unicode"
)

// stripSpace removes all whitespace, including whitespace inside the string.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)
}

// isBracketed reports if s starts with '[' and ends with ']'.
func isBracketed(s string) bool {
	return len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']'
}

// normalizeSection turns a section name into the form used for comparisons:
// bracketed, without any whitespace and lower-cased. "My Section" and
// "[mysection]" both become "[mysection]".
func normalizeSection(name string) string {
	name = strings.ToLower(stripSpace(name))
	if isBracketed(name) {
		return name
	}

	return "[" + name + "]"
}

// headerID returns the comparable form of a section header line.
func headerID(l Line) string {
	return strings.ToLower(stripSpace(l.Raw))
}

func hasLineBreak(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}
