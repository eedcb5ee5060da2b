package collection

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/v2/lists/arraylist"
	"github.com/liznear/covset/model"
	"go.uber.org/multierr"
)

// Dump returns a snapshot of every fragment in iteration order.
func (c *Collection) Dump() []model.Record {
	ret := make([]model.Record, 0, c.items.Size())
	iter := c.items.Iterator()
	for iter.Next() {
		ret = append(ret, iter.Value().Dump())
	}
	return ret
}

// Stat counts the fragments by color. Covered counts fragments colored
// model.Covered, Uncovered counts every worse color.
func (c *Collection) Stat() Stat {
	if s, ok := c.stat.get(c.epoch); ok {
		return s
	}
	var s Stat
	iter := c.items.Iterator()
	for iter.Next() {
		switch color := iter.Value().Color; {
		case color == model.Covered:
			s.Covered++
		case color > model.Covered:
			s.Uncovered++
		}
		s.Total++
	}
	return c.stat.put(c.epoch, s)
}

// MaxColumn returns the largest start or end column of all fragments. It
// panics unless the collection is frozen.
func (c *Collection) MaxColumn() int {
	if c.state != frozen {
		c.fatal(fmt.Errorf("collection: fail to compute max column: %w", ErrNotFrozen))
	}
	if m, ok := c.maxColumn.get(c.epoch); ok {
		return m
	}
	m := 0
	iter := c.items.Iterator()
	for iter.Next() {
		f := iter.Value()
		m = max(m, f.Start.Column, f.End.Column)
	}
	return c.maxColumn.put(c.epoch, m)
}

// Sorted returns the fragments ordered by flat start, then flat end, then color.
func (c *Collection) Sorted() []*model.Fragment {
	l := arraylist.New(c.items.Values()...)
	l.Sort(compareFragments)
	return l.Values()
}

func compareFragments(a, b *model.Fragment) int {
	return cmp.Or(
		cmp.Compare(a.FlatStart, b.FlatStart),
		cmp.Compare(a.FlatEnd, b.FlatEnd),
		cmp.Compare(a.Color, b.Color),
	)
}

// Extent returns the smallest span covering every non-degenerate fragment. It
// returns false if there is none.
func (c *Collection) Extent() (model.Span, bool) {
	var spans []model.Span
	iter := c.items.Iterator()
	for iter.Next() {
		if s := iter.Value().Span(); !s.Empty() {
			spans = append(spans, s)
		}
	}
	return model.Fusion(spans)
}

// Validate checks that every fragment is owned by c and that no two fragments
// collide. All violations are reported.
func (c *Collection) Validate() error {
	var err error
	items := c.items.Values()
	for i, f := range items {
		if f.Owner() != c.handle {
			err = multierr.Append(err, fmt.Errorf("collection: %s is owned by %d, want %d", f, f.Owner(), c.handle))
		}
		for _, g := range items[i+1:] {
			if f.IsCollisionWith(g) {
				err = multierr.Append(err, fmt.Errorf("collection: %s and %s: %w", f, g, ErrCollision))
			}
		}
	}
	return err
}

func (c *Collection) String() string {
	sb := strings.Builder{}
	st := c.Stat()
	_, _ = fmt.Fprintf(&sb, "Collection %d (covered %d, uncovered %d, total %d):\n", c.handle, st.Covered, st.Uncovered, st.Total)
	for _, r := range c.Dump() {
		_, _ = fmt.Fprintf(&sb, "\t%s\n", r)
	}
	return sb.String()
}
