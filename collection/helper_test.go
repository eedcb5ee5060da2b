package collection

import (
	"errors"
	"testing"

	"github.com/liznear/covset/model"
	"go.uber.org/zap/zaptest"
)

func newTestCollection(t *testing.T, fs ...*model.Fragment) *Collection {
	t.Helper()
	c := New(WithLogger(zaptest.NewLogger(t)))
	for _, f := range fs {
		c.Add(f)
	}
	return c
}

func frag(start, end int, color model.Color, notes ...model.Note) *model.Fragment {
	return model.NewFragment(
		model.Position{Line: 1, Column: start + 1},
		model.Position{Line: 1, Column: end + 1},
		start, end, color, notes...)
}

// mustPanic runs f and checks that it panics with an error matching target.
func mustPanic(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("Got no panic, want %v", target)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("Got panic %v, want error %v", r, target)
		}
		if !errors.Is(err, target) {
			t.Errorf("Got %v, want %v", err, target)
		}
	}()
	f()
}

// recoverError runs f and returns the error it panics with, or nil.
func recoverError(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	f()
	return nil
}

type wantRecord struct {
	start, end int
	color      model.Color
	notes      []model.Note
}

// verifySorted compares the fragments of c, ordered by position, with want.
func verifySorted(t *testing.T, c *Collection, want []wantRecord) {
	t.Helper()
	got := c.Sorted()
	if len(got) != len(want) {
		t.Fatalf("Got %d fragments, want %d\n%s", len(got), len(want), c)
	}
	for i, f := range got {
		w := want[i]
		if f.FlatStart != w.start || f.FlatEnd != w.end || f.Color != w.color {
			t.Errorf("%d: Got %s, want [%d, %d] %s", i, f, w.start, w.end, w.color)
		}
		notes := f.Notes()
		if len(notes) != len(w.notes) {
			t.Errorf("%d: Got notes %v, want %v", i, notes, w.notes)
			continue
		}
		for j := range notes {
			if notes[j] != w.notes[j] {
				t.Errorf("%d: Got notes %v, want %v", i, notes, w.notes)
				break
			}
		}
	}
}
