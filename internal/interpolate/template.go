package interpolate

import (
	"slices"
	"strings"
)

// SegmentKind distinguishes literal text from placeholders.
type SegmentKind int

const (
	// SegmentLiteral is plain text, escapes kept as written.
	SegmentLiteral SegmentKind = iota
	// SegmentPlaceholder is a normalized {ident[:spec]} token.
	SegmentPlaceholder
)

// String returns the segment kind name.
func (k SegmentKind) String() string {
	switch k {
	case SegmentLiteral:
		return "literal"
	case SegmentPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Segment is one piece of a parsed template.
type Segment struct {
	Kind SegmentKind
	// Text holds the literal text for SegmentLiteral.
	Text string
	// Ident is the canonical identifier for SegmentPlaceholder.
	Ident string
	// Spec is the verbatim specifier, valid when HasSpec is set.
	Spec    string
	HasSpec bool
	// Offset is the byte offset of the segment in the source template.
	Offset int
}

// Token renders a placeholder segment the way it appears in the rewritten template.
func (s Segment) Token() string {
	if s.Kind == SegmentLiteral {
		return s.Text
	}
	var b strings.Builder
	b.Grow(len(s.Ident) + len(s.Spec) + 3)
	b.WriteByte('{')
	b.WriteString(s.Ident)
	if s.HasSpec {
		b.WriteByte(':')
		b.WriteString(s.Spec)
	}
	b.WriteByte('}')
	return b.String()
}

// Template is the result of normalizing a template string.
type Template struct {
	// Source is the template as given.
	Source string
	// Rewritten is the template with every placeholder named explicitly.
	Rewritten string
	// Fields holds the distinct canonical identifiers, sorted ascending.
	Fields []string
	// Discovered holds the same identifiers in first-seen order.
	Discovered []string
	// Segments lists literal and placeholder pieces in source order.
	Segments []Segment
}

// Has reports whether ident is referenced by the template.
func (t *Template) Has(ident string) bool {
	_, found := slices.BinarySearch(t.Fields, ident)
	return found
}

// Placeholders returns only the placeholder segments, one per occurrence.
func (t *Template) Placeholders() []Segment {
	out := make([]Segment, 0, len(t.Segments))
	for _, seg := range t.Segments {
		if seg.Kind == SegmentPlaceholder {
			out = append(out, seg)
		}
	}
	return out
}

// FieldsIn returns the field set in the requested order.
func (t *Template) FieldsIn(order FieldOrder) []string {
	if order == OrderDiscovered {
		return slices.Clone(t.Discovered)
	}
	return slices.Clone(t.Fields)
}

// FieldOrder selects how the field set is listed.
type FieldOrder string

const (
	// OrderSorted lists identifiers in ascending byte order.
	OrderSorted FieldOrder = "sorted"
	// OrderDiscovered lists identifiers in the order they first appear.
	OrderDiscovered FieldOrder = "discovered"
)

// ParseFieldOrder converts a config or flag value to a FieldOrder.
func ParseFieldOrder(s string) (FieldOrder, bool) {
	switch FieldOrder(strings.ToLower(strings.TrimSpace(s))) {
	case OrderSorted, "":
		return OrderSorted, true
	case OrderDiscovered:
		return OrderDiscovered, true
	default:
		return "", false
	}
}

var unescaper = strings.NewReplacer("{{", "{", "}}", "}")

// Unescape turns literal template text into the text it renders as: doubled
// braces collapse to single ones.
func Unescape(text string) string {
	return unescaper.Replace(text)
}
