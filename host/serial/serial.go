// Package serial opens the host side of the firmware's debug UART.
package serial

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// Config holds serial port settings for the monitor link.
type Config struct {
	// Device path, e.g. "/dev/ttyACM0" or "COM3".
	Device string
	// Baud rate; the firmware configures 115200.
	Baud int
	// ReadTimeout for one Read call; zero blocks.
	ReadTimeout time.Duration
}

// DefaultConfig returns settings matching the pico-rht firmware.
func DefaultConfig(device string) Config {
	return Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100 * time.Millisecond,
	}
}

// Port is an open serial connection.
type Port struct {
	p *serial.Port
}

var _ io.ReadWriteCloser = (*Port)(nil)

// Open opens the configured device.
func Open(cfg Config) (*Port, error) {
	if cfg.Device == "" {
		return nil, fmt.Errorf("serial: no device given")
	}
	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", cfg.Device, err)
	}
	return &Port{p: p}, nil
}

func (p *Port) Read(b []byte) (int, error)  { return p.p.Read(b) }
func (p *Port) Write(b []byte) (int, error) { return p.p.Write(b) }

func (p *Port) Close() error {
	if p.p == nil {
		return nil
	}
	return p.p.Close()
}
