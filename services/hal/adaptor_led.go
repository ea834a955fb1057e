// services/hal/adaptor_led.go
package hal

import (
	"context"
	"time"

	"rhtcode-go/types"
)

// Blink cadence for the status LED, matching the firmware's boot signal.
const blinkHold = 100 * time.Millisecond

type ledAdaptor struct {
	id  string
	pin GPIOPin
}

// NewLEDAdaptor wraps a status LED. The pin is configured as an output,
// initially off.
func NewLEDAdaptor(id string, pin GPIOPin) (Adaptor, error) {
	if err := pin.ConfigureOutput(false); err != nil {
		return nil, err
	}
	return &ledAdaptor{id: id, pin: pin}, nil
}

func (a *ledAdaptor) ID() string { return a.id }

func (a *ledAdaptor) Capabilities() []CapInfo {
	return []CapInfo{{Kind: string(types.KindLED), Info: map[string]any{
		"pin":            a.pin.Number(),
		"schema_version": 1,
	}}}
}

// The LED is control-only; it produces no measurements.
func (a *ledAdaptor) Trigger(context.Context) (time.Duration, error) {
	return 0, ErrUnsupported
}
func (a *ledAdaptor) Collect(context.Context) (Sample, error) { return nil, ErrUnsupported }

func (a *ledAdaptor) Control(kind, method string, payload any) (any, error) {
	if kind != string(types.KindLED) {
		return nil, ErrUnsupported
	}
	switch method {
	case "set":
		lvl := wantBool(payload, "level")
		a.pin.Set(lvl)
		return map[string]any{"ok": true}, nil
	case "get":
		return map[string]any{"level": boolToInt(a.pin.Get())}, nil
	case "toggle":
		a.pin.Toggle()
		return map[string]any{"ok": true}, nil
	case "blink":
		times := wantInt(payload, "times")
		if times <= 0 {
			times = 1
		}
		for i := 0; i < times; i++ {
			a.pin.Toggle()
			time.Sleep(blinkHold)
			a.pin.Toggle()
			time.Sleep(blinkHold)
		}
		return map[string]any{"ok": true}, nil
	default:
		return nil, ErrUnsupported
	}
}
