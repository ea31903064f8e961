package strictjson

import (
	"strconv"
	"strings"
)

// SegmentKind distinguishes object-field segments from array-index segments.
type SegmentKind int

const (
	SegmentField SegmentKind = iota
	SegmentIndex
)

// Segment is a single step of a Path: either an object field name or an
// array index.
type Segment struct {
	Kind  SegmentKind
	Field string
	Index int
}

// Path locates a node within a JSON document tree. It is used purely for
// diagnostics: every ParseError carries the Path at which it was detected.
//
// A Path is immutable. Field and Index return a new Path sharing the
// receiver's segments, so a path captured in an error remains valid after
// the decode call stack unwinds, and sibling decodes can keep descending
// from the same prefix. The zero value is the document root.
type Path struct {
	last *segment
}

type segment struct {
	prev  *segment
	field string
	index int
	kind  SegmentKind
}

// Field returns the path extended with an object-field segment.
func (p Path) Field(name string) Path {
	return Path{last: &segment{prev: p.last, field: name, kind: SegmentField}}
}

// Index returns the path extended with an array-index segment.
func (p Path) Index(i int) Path {
	return Path{last: &segment{prev: p.last, index: i, kind: SegmentIndex}}
}

// IsRoot reports whether the path has no segments.
func (p Path) IsRoot() bool { return p.last == nil }

// Segments returns the path's segments in descent order.
func (p Path) Segments() []Segment {
	n := 0
	for s := p.last; s != nil; s = s.prev {
		n++
	}
	out := make([]Segment, n)
	for s := p.last; s != nil; s = s.prev {
		n--
		out[n] = Segment{Kind: s.kind, Field: s.field, Index: s.index}
	}
	return out
}

// Equal reports whether two paths consist of the same segment sequence,
// regardless of how they were built.
func (p Path) Equal(q Path) bool {
	a, b := p.last, q.last
	for a != nil && b != nil {
		if a == b {
			return true // shared tail
		}
		if a.kind != b.kind || a.field != b.field || a.index != b.index {
			return false
		}
		a, b = a.prev, b.prev
	}
	return a == nil && b == nil
}

// String renders the path for error messages: field segments as ".name",
// index segments as "[i]". The root renders as "<root>".
func (p Path) String() string {
	if p.last == nil {
		return "<root>"
	}
	var b strings.Builder
	for _, s := range p.Segments() {
		switch s.Kind {
		case SegmentField:
			b.WriteByte('.')
			b.WriteString(s.Field)
		case SegmentIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
		}
	}
	return b.String()
}
