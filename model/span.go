package model

import (
	"fmt"
	"math"
)

// Span is an inclusive range [Start, End] in the flat coordinate space.
//
// A span with End < Start is degenerate and covers nothing.
type Span struct {
	Start int
	End   int
}

func NewSpan(start, end int) Span {
	return Span{start, end}
}

// Len returns the number of positions covered by the span, or 0 for a
// degenerate span. The full int range saturates at math.MaxUint64.
func (s Span) Len() uint64 {
	if s.Empty() {
		return 0
	}
	// Unsigned subtraction gives the exact distance for End >= Start.
	d := uint64(int64(s.End)) - uint64(int64(s.Start))
	if d == math.MaxUint64 {
		return d
	}
	return d + 1
}

func (s Span) Empty() bool {
	return s.End < s.Start
}

// Fusion returns the smallest span covering all given spans. It returns false
// if no span is given.
func Fusion(spans []Span) (Span, bool) {
	if len(spans) == 0 {
		return Span{}, false
	}
	ret := spans[0]
	for i := 1; i < len(spans); i++ {
		ret.Start = min(spans[i].Start, ret.Start)
		ret.End = max(spans[i].End, ret.End)
	}
	return ret, true
}

// HasOverlap reports whether s1 and s2 share at least one position. Endpoints
// are inclusive.
func HasOverlap(s1, s2 Span) bool {
	noOverlap := s1.End < s2.Start || s1.Start > s2.End
	return !noOverlap
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d]", s.Start, s.End)
}
