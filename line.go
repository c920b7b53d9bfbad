package iniconfig

import "strings"

// LineKind is the classification of a single raw line.
type LineKind int

// Line kinds reported by Classify.
const (
	Unstructured LineKind = iota
	Blank
	Comment
	SectionHeader
	KeyValue
)

func (k LineKind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	case SectionHeader:
		return "section"
	case KeyValue:
		return "keyvalue"
	default:
		return "unstructured"
	}
}

// Line is a classified raw line. Raw is always the line exactly as read.
//
// Depending on Kind the other fields are set:
// - SectionHeader: Name holds the text between the brackets (trimmed)
// - KeyValue: Key and Value hold both sides of the first '=' (each trimmed)
type Line struct {
	Kind  LineKind
	Raw   string
	Name  string
	Key   string
	Value string
}

// Classify assigns exactly one LineKind to the given line. It never fails,
// anything it can not make sense of is reported as Unstructured.
//
// Rules, checked in order:
// - Blank: empty or only whitespace
// - Comment: the first non-space character is ';'
// - SectionHeader: with all whitespace removed the line is "[...]"
// - KeyValue: the line contains '='
// - Unstructured: everything else
func Classify(line string) Line {
	l := Line{Raw: line}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		l.Kind = Blank

		return l
	}

	if strings.HasPrefix(trimmed, ";") {
		l.Kind = Comment

		return l
	}

	if isHeader(trimmed) {
		l.Kind = SectionHeader
		l.Name = strings.TrimSpace(trimmed[1 : len(trimmed)-1])

		return l
	}

	if k, v, found := strings.Cut(line, "="); found {
		l.Kind = KeyValue
		l.Key = strings.TrimSpace(k)
		l.Value = strings.TrimSpace(v)

		return l
	}

	l.Kind = Unstructured

	return l
}

// Trimmed returns the line in the form handed out to readers: entries as
// "key=value" with whitespace removed around both parts, everything else
// trimmed as a whole.
func (l Line) Trimmed() string {
	if l.Kind == KeyValue {
		return l.Key + "=" + l.Value
	}

	return strings.TrimSpace(l.Raw)
}

// isHeader reports if the line looks like "[name]" once all whitespace
// is stripped. "[ my section ]" qualifies, "[a] b" does not.
func isHeader(line string) bool {
	return isBracketed(stripSpace(line))
}
