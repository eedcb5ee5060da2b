package collection

import (
	"errors"
	"fmt"

	"github.com/liznear/covset/model"
	"go.uber.org/zap"
)

// The following errors are programming errors. The collection panics with an
// error wrapping one of them instead of returning it.
var (
	ErrFrozen            = errors.New("collection is frozen")
	ErrNotFrozen         = errors.New("collection is not frozen")
	ErrOwnershipConflict = fmt.Errorf("ownership conflict: %w", model.ErrOwned)
	ErrNoConvergence     = errors.New("normalization did not converge")
)

// ErrCollision is reported by Validate for every pair of overlapping fragments.
var ErrCollision = errors.New("fragments collide")

func (c *Collection) fatal(err error) {
	c.cfg.Logger.Error("Collection contract violated", zap.Uint64("collection", uint64(c.handle)), zap.Error(err))
	panic(err)
}

func (c *Collection) checkFrozen(op string) {
	if c.state == frozen {
		c.fatal(fmt.Errorf("collection: fail to %s: %w", op, ErrFrozen))
	}
}
