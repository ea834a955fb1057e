//go:build tinygo

package rht03

import "runtime/interrupt"

// IRQCritical masks interrupts across the sampling window so IRQ latency
// cannot inflate a poll-loop count mid-frame.
type IRQCritical struct{}

func (IRQCritical) Suspend() func() {
	state := interrupt.Disable()
	return func() { interrupt.Restore(state) }
}
