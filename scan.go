package iniconfig

import "github.com/gopasspw/gopass/pkg/debug"

// Range is the half-open range [Start, End) of a section body, i.e. the lines
// strictly between its header and the next header (or the end of the document).
type Range struct {
	Start int
	End   int
}

// Len returns the number of body lines.
func (r Range) Len() int {
	return r.End - r.Start
}

// FindSection locates the body of the first section called name. The
// comparison ignores case and whitespace.
//
// The body ends at the next header with a different name or at the end of
// the document. A repeated header of the same section does not end it; it
// stays part of the body and is passed through untouched by writers.
//
// Returns false if the section does not exist (including for an empty
// document). An existing section without any body lines yields Start == End.
func FindSection(lines []string, name string) (Range, bool) {
	target := normalizeSection(name)

	var r Range
	var inSection bool
	for i, raw := range lines {
		l := Classify(raw)
		if l.Kind != SectionHeader {
			continue
		}

		id := headerID(l)
		if !inSection {
			if id == target {
				inSection = true
				r.Start = i + 1
			}

			continue
		}

		if id != target {
			r.End = i
			debug.V(3).Log("found section %s at lines [%d, %d)", target, r.Start, r.End)

			return r, true
		}
	}

	if !inSection {
		debug.V(3).Log("section %s not found in %d lines", target, len(lines))

		return Range{}, false
	}

	r.End = len(lines)
	debug.V(3).Log("found section %s at lines [%d, %d) (until EOF)", target, r.Start, r.End)

	return r, true
}

// ExtractSection returns the trimmed body lines of the section called name.
// Blank lines are always dropped, comments unless includeComments is set.
// Entries are returned as "key=value" with whitespace removed around both
// parts. A missing section yields an empty (non-nil) slice.
func ExtractSection(lines []string, name string, includeComments bool) []string {
	out := []string{}

	r, found := FindSection(lines, name)
	if !found {
		return out
	}

	for _, raw := range lines[r.Start:r.End] {
		l := Classify(raw)
		switch l.Kind {
		case Blank:
			continue
		case Comment:
			if !includeComments {
				continue
			}
		}
		out = append(out, l.Trimmed())
	}

	return out
}
