package iniconfig

import (
	"strings"

	"github.com/gopasspw/gopass/pkg/debug"
)

func formatKeyValue(key, value string, lowercase bool) string {
	if lowercase {
		value = strings.ToLower(value)
	}

	return key + "=" + value
}

// formatSection returns the header line for a new section. The caller's
// casing is kept, brackets are only added if missing.
func formatSection(section string) string {
	section = strings.TrimSpace(section)
	if isBracketed(section) {
		return section
	}

	return "[" + section + "]"
}

// MergeSection upserts key=value into the body lines of a single section
// and returns the new body. The input slice is not modified.
//
// Behavior:
// - The first entry whose key matches case-insensitively is replaced by key=value
// - Every other line (comments, blanks, other keys, later duplicates) is copied verbatim
// - If no entry matches, key=value is appended after all existing body lines
//
// If lowercase is set the value is lower-cased before it is written.
func MergeSection(body []string, key, value string, lowercase bool) []string {
	out := make([]string, 0, len(body)+1)
	line := formatKeyValue(key, value, lowercase)

	for i, raw := range body {
		l := Classify(raw)
		if l.Kind != KeyValue || !strings.EqualFold(l.Key, key) {
			out = append(out, raw)

			continue
		}

		debug.V(3).Log("updating %q -> %q", raw, line)
		out = append(out, line)
		out = append(out, body[i+1:]...)

		return out
	}

	debug.V(3).Log("appending %q", line)

	return append(out, line)
}

// Upsert sets key=value in section and returns the new document. The input
// slice is not modified.
//
// Behavior:
// - An empty document becomes "[section]" followed by key=value
// - A missing section is appended at the end, separated by a blank line
// - Otherwise the section body is merged (see MergeSection) and spliced back
//
// The splice keeps every line before and after the body unchanged.
func Upsert(lines []string, section, key, value string, lowercase bool) []string {
	if len(lines) == 0 {
		debug.V(3).Log("empty document, creating section %q", section)

		return []string{formatSection(section), formatKeyValue(key, value, lowercase)}
	}

	r, found := FindSection(lines, section)
	if !found {
		debug.V(3).Log("section %q not found, appending it", section)
		out := make([]string, 0, len(lines)+3)
		out = append(out, lines...)

		return append(out, "", formatSection(section), formatKeyValue(key, value, lowercase))
	}

	prefix := lines[:r.Start]
	body := MergeSection(lines[r.Start:r.End], key, value, lowercase)
	suffix := lines[r.End:]

	out := make([]string, 0, len(prefix)+len(body)+len(suffix))
	out = append(out, prefix...)
	out = append(out, body...)

	return append(out, suffix...)
}
