package collection

import (
	"fmt"

	"github.com/liznear/covset/model"
	"go.uber.org/zap"
)

// Freeze forbids structural mutation until Unfreeze. It panics if the
// collection is already frozen.
func (c *Collection) Freeze() {
	c.checkFrozen("freeze")
	c.state = frozen
	c.epoch++
}

func (c *Collection) Unfreeze() {
	if c.state == idle {
		return
	}
	c.state = idle
	c.epoch++
}

func (c *Collection) Frozen() bool {
	return c.state == frozen
}

// Normalize resolves overlapping fragments until no two fragments collide.
//
// It repeatedly picks one colliding pair and resolves it:
//   - a degenerate fragment is dropped;
//   - fragments of the same color are merged into one;
//   - otherwise the worse color keeps the overlapping part and the other
//     fragment is clipped or split around it.
//
// Notes of dropped fragments are moved to a surviving fragment. The collection
// is frozen while Normalize runs and is unfrozen when it returns, even if it
// panics.
func (c *Collection) Normalize() {
	c.Freeze()
	defer c.Unfreeze()

	c.cfg.Logger.Debug("Start normalization", zap.Uint64("collection", uint64(c.handle)), zap.Int("fragments", c.items.Size()))
	resolved := 0
	for {
		a, b, ok := c.findCollision()
		if !ok {
			break
		}
		resolved++
		if c.cfg.MaxIterations > 0 && resolved > c.cfg.MaxIterations {
			c.fatal(fmt.Errorf("collection: fail to normalize after %d collisions: %w", c.cfg.MaxIterations, ErrNoConvergence))
		}
		c.resolve(a, b)
	}
	c.cfg.Logger.Debug("Finish normalization",
		zap.Uint64("collection", uint64(c.handle)),
		zap.Int("fragments", c.items.Size()),
		zap.Int("resolved", resolved))
}

// findCollision returns the first colliding pair. Both loops walk from the
// most recently added fragment to the oldest one; the returned pair is
// (older in the scan, newer in the scan).
func (c *Collection) findCollision() (*model.Fragment, *model.Fragment, bool) {
	items := c.items.Values()
	for i := len(items) - 1; i >= 0; i-- {
		newItem := items[i]
		for k := len(items) - 1; k >= 0; k-- {
			if k == i {
				continue
			}
			oldItem := items[k]
			if newItem.IsCollisionWith(oldItem) {
				return oldItem, newItem, true
			}
		}
	}
	return nil, nil, false
}

// resolve fixes a single collision. older is always the longer fragment of the
// pair; it is the one newer gets clipped against.
func (c *Collection) resolve(older, newer *model.Fragment) {
	if older.Length() < newer.Length() {
		older, newer = newer, older
	}
	log := c.cfg.Logger

	if newer.Empty() {
		log.Debug("Drop degenerate fragment", zap.Stringer("fragment", newer), zap.Stringer("other", older))
		c.remove(newer)
		return
	}
	if older.Empty() {
		log.Debug("Drop degenerate fragment", zap.Stringer("fragment", older), zap.Stringer("other", newer))
		c.remove(older)
		return
	}

	switch {
	case older.Color == newer.Color:
		log.Debug("Merge fragments of the same color", zap.Stringer("older", older), zap.Stringer("newer", newer))
		newer.FlatStart = min(newer.FlatStart, older.FlatStart)
		newer.FlatEnd = max(newer.FlatEnd, older.FlatEnd)
		newer.AddNoteFrom(older)
		c.remove(older)

	case older.Color > newer.Color:
		// older wins the overlap, clip newer. Once newer inside older is
		// handled, newer sticks out past older, so the +1 and -1 stay in range.
		switch {
		case newer.FlatStart == older.FlatStart, newer.FlatStart > older.FlatStart && newer.FlatEnd <= older.FlatEnd:
			log.Debug("Drop covered fragment", zap.Stringer("older", older), zap.Stringer("newer", newer))
			older.AddNoteFrom(newer)
			c.remove(newer)
			return
		case newer.FlatStart > older.FlatStart:
			newer.FlatStart = older.FlatEnd + 1
		default:
			newer.FlatEnd = older.FlatStart - 1
		}
		log.Debug("Clip fragment", zap.Stringer("older", older), zap.Stringer("clipped", newer))

	default:
		// newer wins the overlap, keep what is left of older on both sides.
		c.remove(older)
		kept := false
		if older.FlatStart < newer.FlatStart {
			left := older.Clone()
			left.FlatEnd = newer.FlatStart - 1
			c.add(left)
			kept = true
		}
		if older.FlatEnd > newer.FlatEnd {
			right := older.Clone()
			right.FlatStart = newer.FlatEnd + 1
			c.add(right)
			kept = true
		}
		if !kept {
			newer.AddNoteFrom(older)
		}
		log.Debug("Split fragment", zap.Stringer("older", older), zap.Stringer("newer", newer), zap.Bool("kept", kept))
	}
}
