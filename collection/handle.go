package collection

import (
	"sync/atomic"

	"github.com/liznear/covset/model"
)

// handleIter generates collection handles. Handles are unique within the
// process and never zero.
type handleIter struct {
	gen atomic.Uint64
}

var handles handleIter

func (i *handleIter) next() model.Handle {
	return model.Handle(i.gen.Add(1))
}
