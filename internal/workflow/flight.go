package workflow

import (
	"sync/atomic"

	"docsum/internal/state"
)

// Status is the state of a single-flight workflow.
type Status int32

const (
	// StatusIdle means no operation is in flight.
	StatusIdle Status = iota
	// StatusBusy means an operation is in flight (Submitting for uploads, Waiting for the assistant).
	StatusBusy
)

func (s Status) String() string {
	if s == StatusBusy {
		return "busy"
	}
	return "idle"
}

// flight admits one operation at a time and publishes its status.
type flight struct {
	busy atomic.Bool
	obs  state.Observers
}

// begin moves Idle -> Busy. It returns false, without side effects, if already busy.
func (f *flight) begin() bool {
	if !f.busy.CompareAndSwap(false, true) {
		return false
	}
	f.obs.Notify()
	return true
}

// end moves Busy -> Idle.
func (f *flight) end() {
	f.busy.Store(false)
	f.obs.Notify()
}

func (f *flight) status() Status {
	if f.busy.Load() {
		return StatusBusy
	}
	return StatusIdle
}
