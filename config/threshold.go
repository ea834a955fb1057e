package config

import (
	"errors"
	"fmt"

	"rhtcode-go/x/mathx"
)

var errNoPoints = errors.New("config: calibration has no points")

// ThresholdFor resolves the pulse threshold for a polling clock. An exact
// table match wins; otherwise the nearest point scales linearly, since the
// iteration count per pulse grows proportionally with clock rate. The
// result is clamped to the representable 1..255 range: a clock slow enough
// to scale below 1 cannot discriminate pulses at all.
func (c CalibrationConfig) ThresholdFor(clockHz uint32) (uint8, error) {
	if clockHz == 0 {
		return 0, fmt.Errorf("config: clock_hz must be positive")
	}
	if len(c.Points) == 0 {
		return 0, errNoPoints
	}
	nearest := c.Points[0]
	for _, p := range c.Points[1:] {
		if absDelta(p.ClockHz, clockHz) < absDelta(nearest.ClockHz, clockHz) {
			nearest = p
		}
	}
	if nearest.ClockHz == clockHz {
		return nearest.Threshold, nil
	}
	scaled := mathx.RoundDiv(uint64(nearest.Threshold)*uint64(clockHz), uint64(nearest.ClockHz))
	return uint8(mathx.Clamp(scaled, 1, 255)), nil
}

func absDelta(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
