package source

import (
	"fmt"
)

// Span is a byte-offset range into a buffer. Start is inclusive, End
// exclusive. The zero Span refers to no buffer at all.
type Span struct {
	Buffer BufferID
	Start  uint32
	End    uint32
}

// IsZero reports whether the span carries no location.
func (s Span) IsZero() bool {
	return s == Span{}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Buffer, s.Start, s.End)
}

// Cover extends the span to include other. Spans from different buffers
// are left untouched.
func (s Span) Cover(other Span) Span {
	if s.Buffer != other.Buffer {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Intersect clips the span to the part shared with other. ok is true when
// the spans touch at all, including a zero-width overlap at a shared
// boundary; callers that want to treat empty overlaps as misses must check
// Empty on the result.
func (s Span) Intersect(other Span) (Span, bool) {
	if s.Buffer != other.Buffer {
		return Span{}, false
	}
	start := max(s.Start, other.Start)
	end := min(s.End, other.End)
	if start > end {
		return Span{}, false
	}
	return Span{Buffer: s.Buffer, Start: start, End: end}, true
}

// Resize returns a span with the same start and the given length.
func (s Span) Resize(length uint32) Span {
	return Span{Buffer: s.Buffer, Start: s.Start, End: s.Start + length}
}

// WithStart returns a span with the start moved to the given offset.
func (s Span) WithStart(start uint32) Span {
	return Span{Buffer: s.Buffer, Start: start, End: s.End}
}
