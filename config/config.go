// Package config loads and validates sensor calibration for the rht03
// decoder. The short/long pulse threshold is a property of the polling
// clock, not of the sensor, so it ships as data: a table of known
// clock→threshold points that other clock rates scale from linearly.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"rhtcode-go/drivers/rht03"
)

type Config struct {
	Sensor      SensorConfig      `yaml:"sensor"`
	Calibration CalibrationConfig `yaml:"calibration"`
}

type SensorConfig struct {
	Pin        int    `yaml:"pin"`
	SampleCap  uint8  `yaml:"sample_cap"`
	StartCap   uint32 `yaml:"start_cap"`
	WakeHoldMs int    `yaml:"wake_hold_ms"`
}

type CalibrationConfig struct {
	Points []CalibrationPoint `yaml:"points"`
}

// CalibrationPoint is one measured pairing of polling clock and the
// iteration-count threshold that separates short from long pulses there.
type CalibrationPoint struct {
	ClockHz   uint32 `yaml:"clock_hz"`
	Threshold uint8  `yaml:"threshold"`
}

// Default returns the shipped calibration: the two known-good points from
// the original AVR bring-up (8 MHz → 28, 4 MHz → 14).
func Default() *Config {
	cfg := &Config{
		Calibration: CalibrationConfig{
			Points: []CalibrationPoint{
				{ClockHz: 8_000_000, Threshold: rht03.Threshold8MHz},
				{ClockHz: 4_000_000, Threshold: rht03.Threshold4MHz},
			},
		},
	}
	cfg.normalize()
	return cfg
}

// Load parses YAML, fills defaults, and validates.
func Load(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads and parses a YAML calibration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

func (c *Config) normalize() {
	if c.Sensor.SampleCap == 0 {
		c.Sensor.SampleCap = 255
	}
	if c.Sensor.StartCap == 0 {
		c.Sensor.StartCap = 10000
	}
	if c.Sensor.WakeHoldMs == 0 {
		c.Sensor.WakeHoldMs = 5
	}
	if len(c.Calibration.Points) == 0 {
		c.Calibration.Points = Default().Calibration.Points
	}
}

// DriverConfig builds a driver Config for the given polling clock.
func (c *Config) DriverConfig(clockHz uint32) (rht03.Config, error) {
	threshold, err := c.Calibration.ThresholdFor(clockHz)
	if err != nil {
		return rht03.Config{}, err
	}
	return rht03.Config{
		Threshold:  threshold,
		SampleCap:  c.Sensor.SampleCap,
		StartCap:   c.Sensor.StartCap,
		WakeHoldMs: c.Sensor.WakeHoldMs,
	}, nil
}
