package solver

import "sync/atomic"

// AtomicFlag is a single-bit, one-shot cancellation token. Callers create a
// fresh AtomicFlag per solve; Set is irreversible for that instance.
// Set uses a release store and IsSet an acquire load, so a Set on one
// goroutine happens-before the next IsSet that observes it returning true
// on any other goroutine.
type AtomicFlag struct {
	set atomic.Bool
}

// NewAtomicFlag returns an unset flag.
func NewAtomicFlag() *AtomicFlag { return &AtomicFlag{} }

// Set arms the flag. Calling Set more than once is a no-op.
func (f *AtomicFlag) Set() { f.set.Store(true) }

// IsSet reports whether Set has been called.
func (f *AtomicFlag) IsSet() bool { return f.set.Load() }
