//go:build !tinygo

package rht03

import "runtime/debug"

// Host-side Critical implementations. MCU builds get the interrupt-backed
// one in critical_tinygo.go.

// NopCritical does nothing; fine for unit tests and replay.
type NopCritical struct{}

func (NopCritical) Suspend() func() { return func() {} }

// GCCritical turns the garbage collector off across the sampling window so
// a GC pause cannot stretch a poll-loop count mid-frame.
type GCCritical struct{}

func (GCCritical) Suspend() func() {
	prev := debug.SetGCPercent(-1)
	return func() { debug.SetGCPercent(prev) }
}
