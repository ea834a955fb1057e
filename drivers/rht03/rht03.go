// Package rht03 provides a driver for the RHT03 (AM2302/DHT22 family)
// temperature/humidity sensor on its single-wire, pulse-timed protocol.
//
//	d := rht03.New(line)
//	d.Configure(rht03.Config{Threshold: 28})
//	r, err := d.Read()
//
// The sensor has no clock line: bit values are recovered by busy-polling the
// data line and counting loop iterations per high pulse, so the Threshold
// calibration is tied to the polling rate of the host (see Threshold8MHz,
// Threshold4MHz and the config package). Read is blocking by construction
// and must not be preempted mid-frame; pass a Critical implementation to
// bracket the sampling window.
//
// The driver performs no pacing between transactions. The datasheet allows
// one reading every 2 seconds; calling Read more often is the caller's
// problem (see services/hal for a paced adaptor).
package rht03

import (
	"errors"
	"time"
)

// Frame geometry. One transaction samples exactly Transitions pulses: a
// 2-pulse preamble that carries no data, then 40 data bits packed MSB-first
// into 5 byte buckets (humidity hi/lo, temperature hi/lo, checksum).
const (
	PreambleBits = 2
	DataBits     = 40
	Buckets      = 5
	Transitions  = PreambleBits + DataBits
)

// Known-good threshold calibrations: the iteration count separating a short
// (0) from a long (1) pulse at a given polling clock. The relationship is
// inverse-proportional: a faster clock runs more poll iterations per pulse,
// so the threshold rises with clock rate.
const (
	Threshold8MHz = 28
	Threshold4MHz = 14
)

// Errors returned by the driver.
var (
	// ErrLineStuck: the line never went high while waiting for a pulse
	// start. The original AVR implementation spins forever here; this
	// driver bounds the wait with Config.StartCap instead, a deliberate
	// behavioural change.
	ErrLineStuck = errors.New("rht03: line stuck low")
	// ErrAcquisition: a run of cap-saturated pulses, which means the
	// sensor is absent or the decoder has lost sync with the frame.
	ErrAcquisition = errors.New("rht03: acquisition failed")
)

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Line is the single-wire data line. The driver owns its direction for the
// duration of one transaction: output while waking the sensor, input with
// pull-up while sampling. Get must be cheap; it sits in the hot poll loop.
type Line interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
}

// Critical brackets the sampling window. Suspend returns the matching
// restore function. On MCU builds this maps to interrupt disable/restore;
// on host builds NopCritical or GCCritical are enough for tests and replay.
type Critical interface {
	Suspend() func()
}

// DebugSink receives per-pulse iteration counts and final reading values
// when diagnostics are wanted. The driver never depends on it; nil disables.
type DebugSink interface {
	Emit(tag string, value int)
}

// Config controls sampling behaviour. All fields default sensibly on zero.
type Config struct {
	// Threshold is the iteration count above which a pulse classifies as
	// a 1 bit. Calibrated to the polling clock; default Threshold8MHz.
	Threshold uint8
	// SampleCap bounds the high-phase poll loop so a wedged-high line
	// yields one degenerate sample instead of hanging. Default 255.
	SampleCap uint8
	// StartCap bounds the low-phase wait for a pulse start; exhausting it
	// returns ErrLineStuck. Default 10000 iterations.
	StartCap uint32
	// SaturationRun is how many consecutive cap-saturated samples abort
	// the transaction with ErrAcquisition. Default 3.
	SaturationRun int
	// WakeHoldMs is the drive-low hold that wakes the sensor. Default 5.
	WakeHoldMs int
	// Critical, if non-nil, suspends preemption across the sampling window.
	Critical Critical
	// Debug, if non-nil, receives pulse counts and decoded values.
	Debug DebugSink
}

// Device decodes readings from one RHT03 on one line.
type Device struct {
	line Line
	cfg  Config
}

// New binds a driver to a line. The line is not touched until Read.
func New(line Line) Device {
	return Device{line: line}
}

// Config returns the effective configuration, defaults applied.
func (d *Device) Config() Config {
	if d.cfg.SampleCap == 0 {
		d.Configure()
	}
	return d.cfg
}

// Configure applies optional config. It may be called with no argument to
// install the defaults; Read does so on first use if needed.
func (d *Device) Configure(cfgs ...Config) {
	var c Config
	if len(cfgs) > 0 {
		c = cfgs[0]
	}
	if c.Threshold == 0 {
		c.Threshold = Threshold8MHz
	}
	if c.SampleCap == 0 {
		c.SampleCap = 255
	}
	if c.StartCap == 0 {
		c.StartCap = 10000
	}
	if c.SaturationRun <= 0 {
		c.SaturationRun = 3
	}
	if c.WakeHoldMs <= 0 {
		c.WakeHoldMs = 5
	}
	d.cfg = c
}

// Read performs one full transaction: wake the sensor (drive low, hold,
// release), switch the line to input, sample all 42 pulses, then assemble
// and validate the frame. A checksum mismatch is not an error: the reading
// is returned with Valid=false and the caller decides what to do with it.
func (d *Device) Read() (Reading, error) {
	if d.cfg.SampleCap == 0 {
		d.Configure()
	}
	var rd Reading

	// Wake pulse: hold the line low, then raise it and hand the line back
	// to the sensor by floating with pull-up.
	if err := d.line.ConfigureOutput(false); err != nil {
		return rd, err
	}
	time.Sleep(time.Duration(d.cfg.WakeHoldMs) * time.Millisecond)

	restore := func() {}
	if d.cfg.Critical != nil {
		restore = d.cfg.Critical.Suspend()
	}
	defer restore()

	d.line.Set(true)
	if err := d.line.ConfigureInput(PullUp); err != nil {
		return rd, err
	}

	var bits [DataBits]uint8
	saturated := 0
	for i := 0; i < Transitions; i++ {
		n, err := d.samplePulse()
		if err != nil {
			return rd, err
		}
		rd.Trace[i] = n
		if n >= d.cfg.SampleCap {
			saturated++
			if saturated >= d.cfg.SaturationRun {
				return rd, ErrAcquisition
			}
		} else {
			saturated = 0
		}
		if i >= PreambleBits {
			bits[i-PreambleBits] = classifyPulse(n, d.cfg.Threshold)
		}
	}

	buckets := assembleFrame(&bits)
	rd.Humidity = uint16(buckets[0])<<8 | uint16(buckets[1])
	rd.Temperature = uint16(buckets[2])<<8 | uint16(buckets[3])
	rd.Valid = checksumOK(buckets)

	// Diagnostics are deferred until after the timing-critical window; a
	// sink slow enough to matter must never run between pulses.
	if d.cfg.Debug != nil {
		for _, c := range rd.Trace {
			d.cfg.Debug.Emit("pulse", int(c))
		}
		d.cfg.Debug.Emit("humidity", int(rd.Humidity))
		d.cfg.Debug.Emit("temperature", int(rd.Temperature))
		d.cfg.Debug.Emit("valid", boolToInt(rd.Valid))
	}
	return rd, nil
}

// samplePulse blocks until the next pulse starts, then counts poll
// iterations while the line stays high. The count saturates at SampleCap so
// a wedged-high line still makes forward progress; the low-phase wait is
// bounded by StartCap and fails with ErrLineStuck rather than spinning
// forever like the original design.
func (d *Device) samplePulse() (uint8, error) {
	for wait := d.cfg.StartCap; !d.line.Get(); wait-- {
		if wait == 0 {
			return 0, ErrLineStuck
		}
	}
	var n uint8
	for d.line.Get() {
		if n == d.cfg.SampleCap {
			break
		}
		n++
	}
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
