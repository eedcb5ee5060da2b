package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/emirpasic/gods/v2/sets/hashset"
)

// ErrOwned is returned when a fragment is claimed while another owner holds it.
var ErrOwned = errors.New("fragment is owned by another collection")

// Note is an annotation attached to a fragment.
type Note string

// Handle identifies the owner of a fragment. The zero Handle means unowned.
type Handle uint64

// Fragment is one colored range of a source file.
//
// Start and End are the human-readable bounds. FlatStart and FlatEnd are the
// inclusive bounds in the flat coordinate space and are the only ones used for
// overlap arithmetic. Callers may move FlatStart and FlatEnd; a fragment with
// FlatEnd < FlatStart is degenerate.
type Fragment struct {
	Start     Position
	End       Position
	FlatStart int
	FlatEnd   int
	Color     Color

	notes *hashset.Set[Note]
	owner Handle
}

func NewFragment(start, end Position, flatStart, flatEnd int, color Color, notes ...Note) *Fragment {
	return &Fragment{
		Start:     start,
		End:       end,
		FlatStart: flatStart,
		FlatEnd:   flatEnd,
		Color:     color,
		notes:     hashset.New(notes...),
	}
}

// Span returns the flat range of the fragment.
func (f *Fragment) Span() Span {
	return Span{f.FlatStart, f.FlatEnd}
}

// Length is the number of flat positions covered. It is 0 for degenerate
// fragments.
func (f *Fragment) Length() uint64 {
	return f.Span().Len()
}

// Empty reports whether f is degenerate, i.e. FlatEnd < FlatStart.
func (f *Fragment) Empty() bool {
	return f.Span().Empty()
}

// Clone returns an independent copy. The copy is unowned and has its own notes.
func (f *Fragment) Clone() *Fragment {
	return &Fragment{
		Start:     f.Start,
		End:       f.End,
		FlatStart: f.FlatStart,
		FlatEnd:   f.FlatEnd,
		Color:     f.Color,
		notes:     hashset.New(f.noteSet().Values()...),
	}
}

// IsCollisionWith reports whether the flat ranges of f and other overlap.
func (f *Fragment) IsCollisionWith(other *Fragment) bool {
	return HasOverlap(f.Span(), other.Span())
}

func (f *Fragment) AddNote(notes ...Note) {
	f.noteSet().Add(notes...)
}

// AddNoteFrom merges the notes of other into f. other is not modified.
func (f *Fragment) AddNoteFrom(other *Fragment) {
	if other == f || other.notes == nil {
		return
	}
	f.noteSet().Add(other.notes.Values()...)
}

// Notes returns the notes of f in sorted order.
func (f *Fragment) Notes() []Note {
	if f.notes == nil {
		return nil
	}
	ret := f.notes.Values()
	slices.Sort(ret)
	return ret
}

// noteSet lazily initializes notes so that a zero Fragment is usable.
func (f *Fragment) noteSet() *hashset.Set[Note] {
	if f.notes == nil {
		f.notes = hashset.New[Note]()
	}
	return f.notes
}

func (f *Fragment) Owner() Handle {
	return f.owner
}

// Claim marks f as owned by h. Claiming a fragment already owned by h is a
// no-op.
func (f *Fragment) Claim(h Handle) error {
	if f.owner != 0 && f.owner != h {
		return fmt.Errorf("model: fail to claim %s: %w", f, ErrOwned)
	}
	f.owner = h
	return nil
}

// Release clears the owner of f if it is h.
func (f *Fragment) Release(h Handle) {
	if f.owner == h {
		f.owner = 0
	}
}

// Dump returns a structural snapshot of f without its owner.
func (f *Fragment) Dump() Record {
	return Record{
		Start:     f.Start,
		End:       f.End,
		FlatStart: f.FlatStart,
		FlatEnd:   f.FlatEnd,
		Color:     f.Color,
		Notes:     f.Notes(),
	}
}

func (f *Fragment) String() string {
	return fmt.Sprintf("%s %s", f.Span(), f.Color)
}

// Record is the flat snapshot of a fragment handed to reporting layers.
type Record struct {
	Start     Position
	End       Position
	FlatStart int
	FlatEnd   int
	Color     Color
	Notes     []Note
}

func (r Record) String() string {
	sb := strings.Builder{}
	_, _ = fmt.Fprintf(&sb, "%s-%s [%d, %d] %s", r.Start, r.End, r.FlatStart, r.FlatEnd, r.Color)
	if len(r.Notes) > 0 {
		sb.WriteString(" {")
		for i, n := range r.Notes {
			if i != 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(string(n))
		}
		sb.WriteByte('}')
	}
	return sb.String()
}
