package eq

import "sync/atomic"

// ChangeFlag records that parameters changed since the control loop last
// looked. Any goroutine may Set it; one consumer clears it.
type ChangeFlag struct {
	pending atomic.Bool
}

// Set marks a change as pending.
func (f *ChangeFlag) Set() {
	f.pending.Store(true)
}

// Pending reports whether a change is pending without clearing it.
func (f *ChangeFlag) Pending() bool {
	return f.pending.Load()
}

// CheckAndClear reports whether a change was pending and clears the flag
// in the same atomic step.
func (f *ChangeFlag) CheckAndClear() bool {
	return f.pending.CompareAndSwap(true, false)
}
