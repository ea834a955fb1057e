//go:build rp2040

package main

import (
	"machine"

	"rhtcode-go/drivers/rht03"
)

// machinePin adapts a machine.Pin to the driver's Line and the HAL's
// GPIOPin surface.
type machinePin struct {
	p machine.Pin
}

func (m machinePin) ConfigureInput(pull rht03.Pull) error {
	mode := machine.PinInput
	switch pull {
	case rht03.PullUp:
		mode = machine.PinInputPullup
	case rht03.PullDown:
		mode = machine.PinInputPulldown
	}
	m.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (m machinePin) ConfigureOutput(initial bool) error {
	m.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	m.p.Set(initial)
	return nil
}

func (m machinePin) Set(level bool) { m.p.Set(level) }
func (m machinePin) Get() bool      { return m.p.Get() }
func (m machinePin) Toggle()        { m.p.Set(!m.p.Get()) }
func (m machinePin) Number() int    { return int(m.p) }
