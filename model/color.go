package model

import "fmt"

// Color is the coverage state of a fragment. Colors are totally ordered: a
// higher value means worse coverage and takes precedence when fragments overlap.
type Color int

const (
	Covered Color = iota
	PartiallyCovered
	Uncovered
)

func (c Color) String() string {
	switch c {
	case Covered:
		return "covered"
	case PartiallyCovered:
		return "partial"
	case Uncovered:
		return "uncovered"
	}
	return fmt.Sprintf("color(%d)", int(c))
}

// Position is a human-readable location in a source file. A zero Column means
// the column is unknown.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
