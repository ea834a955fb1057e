package rht03

// Trace is the per-transaction record of raw pulse counts, preamble
// included. Each transaction owns its own trace; there is no shared
// process-wide sample buffer.
type Trace [Transitions]uint8

// Saturated reports how many samples in the trace hit the given cap.
func (t Trace) Saturated(cap uint8) int {
	n := 0
	for _, c := range t {
		if c >= cap {
			n++
		}
	}
	return n
}

// Reading is the result of one transaction. It is a plain value: the caller
// owns it outright and a later Read cannot mutate it.
type Reading struct {
	// Humidity is the raw 16-bit wire value, tenths of %RH.
	Humidity uint16
	// Temperature is the raw 16-bit wire value, tenths of °C with bit 15
	// as the sign flag.
	Temperature uint16
	// Valid is the checksum verdict. A false reading is still a reading;
	// treat the values as unreliable rather than absent.
	Valid bool
	// Trace holds the raw pulse counts for diagnostics.
	Trace Trace
}

// Fixed-point accessors in tenths of units; no floats on this path.

// DeciRelHumidity returns tenths of %RH (e.g. 652 => 65.2%).
func (r Reading) DeciRelHumidity() uint16 {
	return r.Humidity
}

// DeciCelsius returns tenths of °C. Negative temperatures arrive with the
// sign in bit 15 rather than as two's complement.
func (r Reading) DeciCelsius() int16 {
	if r.Temperature&0x8000 != 0 {
		return -int16(r.Temperature & 0x7FFF)
	}
	return int16(r.Temperature)
}
