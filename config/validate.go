package config

import "fmt"

// Validate rejects configs the decoder cannot act on.
func Validate(cfg *Config) error {
	if cfg.Sensor.Pin < 0 {
		return fmt.Errorf("sensor: pin %d is negative", cfg.Sensor.Pin)
	}
	if len(cfg.Calibration.Points) == 0 {
		return errNoPoints
	}
	seen := make(map[uint32]bool, len(cfg.Calibration.Points))
	for i, p := range cfg.Calibration.Points {
		if p.ClockHz == 0 {
			return fmt.Errorf("calibration: point %d: clock_hz must be positive", i)
		}
		if p.Threshold == 0 {
			return fmt.Errorf("calibration: point %d: threshold must be positive", i)
		}
		if seen[p.ClockHz] {
			return fmt.Errorf("calibration: duplicate point for clock %d", p.ClockHz)
		}
		seen[p.ClockHz] = true
	}
	return nil
}
