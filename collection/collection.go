package collection

import (
	"fmt"

	"github.com/emirpasic/gods/v2/sets/linkedhashset"
	"github.com/liznear/covset/model"
)

type state int

const (
	idle state = iota
	frozen
)

// epoch counts structural changes of a collection. Cached views remember the
// epoch they were computed at.
type epoch uint64

type cached[T any] struct {
	valid bool
	epoch epoch
	value T
}

func (c *cached[T]) get(e epoch) (T, bool) {
	if !c.valid || c.epoch != e {
		var zero T
		return zero, false
	}
	return c.value, true
}

func (c *cached[T]) put(e epoch, v T) T {
	c.valid, c.epoch, c.value = true, e, v
	return v
}

// Stat summarizes the colors of the fragments in a collection.
type Stat struct {
	Covered   int
	Uncovered int
	Total     int
}

// Collection is a set of coverage fragments of one source file.
//
// Fragments may overlap after Add or Merge. Normalize resolves every overlap so
// that the fragments form a partition of the covered flat range. Iteration
// follows insertion order, which makes normalization deterministic.
//
// A Collection is not safe for concurrent use. Violations of its contract
// (mutating while frozen, adding a fragment owned by another collection,
// reading MaxColumn while not frozen) panic.
type Collection struct {
	cfg    *Config
	handle model.Handle
	items  *linkedhashset.Set[*model.Fragment]
	state  state
	epoch  epoch

	stat      cached[Stat]
	maxColumn cached[int]
}

func New(opts ...Option) *Collection {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Collection{
		cfg:    cfg,
		handle: handles.next(),
		items:  linkedhashset.New[*model.Fragment](),
	}
}

// Add inserts f. Adding a fragment the collection already owns is a no-op.
func (c *Collection) Add(f *model.Fragment) {
	c.checkFrozen("add")
	c.add(f)
}

// Remove deletes f if present and releases the collection's ownership of it,
// so that f can be added to another collection afterwards.
func (c *Collection) Remove(f *model.Fragment) {
	c.checkFrozen("remove")
	c.remove(f)
}

// Merge adds a clone of every fragment of other, in other's order, and returns
// c. Overlaps introduced by the merge remain until the next Normalize.
func (c *Collection) Merge(other *Collection) *Collection {
	c.checkFrozen("merge")
	if other == nil {
		return c
	}
	for _, f := range other.items.Values() {
		c.add(f.Clone())
	}
	return c
}

func (c *Collection) add(f *model.Fragment) {
	if c.items.Contains(f) {
		return
	}
	if err := f.Claim(c.handle); err != nil {
		c.fatal(fmt.Errorf("collection: fail to add %s: %w: %w", f, ErrOwnershipConflict, err))
	}
	c.items.Add(f)
	c.epoch++
}

func (c *Collection) remove(f *model.Fragment) {
	if !c.items.Contains(f) {
		return
	}
	c.items.Remove(f)
	f.Release(c.handle)
	c.epoch++
}

// Len returns the number of fragments.
func (c *Collection) Len() int {
	return c.items.Size()
}

// Items returns the fragments in iteration order. The returned slice is a
// copy, but the fragments are shared with the collection.
func (c *Collection) Items() []*model.Fragment {
	return c.items.Values()
}

// Contains reports whether f belongs to c.
func (c *Collection) Contains(f *model.Fragment) bool {
	return c.items.Contains(f)
}
