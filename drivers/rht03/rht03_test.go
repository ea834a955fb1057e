package rht03

import (
	"reflect"
	"testing"
)

// Compile-time checks.
var (
	_ Line     = (*fakeLine)(nil)
	_ Critical = NopCritical{}
)

// fakeLine replays a scripted sequence of poll levels and records the
// direction/level transitions the driver performs. Past the end of the
// script the line reads idle low.
type fakeLine struct {
	levels []bool
	pos    int
	ops    []string
}

func (f *fakeLine) ConfigureInput(p Pull) error {
	switch p {
	case PullUp:
		f.ops = append(f.ops, "in:up")
	case PullDown:
		f.ops = append(f.ops, "in:down")
	default:
		f.ops = append(f.ops, "in:none")
	}
	return nil
}

func (f *fakeLine) ConfigureOutput(initial bool) error {
	if initial {
		f.ops = append(f.ops, "out:high")
	} else {
		f.ops = append(f.ops, "out:low")
	}
	return nil
}

func (f *fakeLine) Set(level bool) {
	if level {
		f.ops = append(f.ops, "set:high")
	} else {
		f.ops = append(f.ops, "set:low")
	}
}

func (f *fakeLine) Get() bool {
	if f.pos >= len(f.levels) {
		return false
	}
	v := f.levels[f.pos]
	f.pos++
	return v
}

// scriptPulses encodes per-pulse iteration counts as a poll-level script.
// Each pulse is a short low gap followed by count+1 highs: the first high
// is consumed by the pulse-start wait, the rest by the counting loop.
func scriptPulses(counts []uint8) []bool {
	var levels []bool
	for _, c := range counts {
		levels = append(levels, false, false, false)
		for i := 0; i <= int(c); i++ {
			levels = append(levels, true)
		}
	}
	return levels
}

// frameCounts builds the 42 pulse counts for a frame carrying the given
// buckets: two preamble pulses, then one long/short pulse per data bit.
func frameCounts(buckets [Buckets]uint8, short, long uint8) []uint8 {
	counts := []uint8{short, short} // preamble timing carries no data
	for k := 0; k < Buckets; k++ {
		for j := 7; j >= 0; j-- {
			if buckets[k]>>uint(j)&1 == 1 {
				counts = append(counts, long)
			} else {
				counts = append(counts, short)
			}
		}
	}
	return counts
}

func TestRead_ValidFrame(t *testing.T) {
	counts := frameCounts([Buckets]uint8{0x01, 0x90, 0x00, 0xC8, 0x59}, 10, 40)
	line := &fakeLine{levels: scriptPulses(counts)}
	d := New(line)
	d.Configure(Config{Critical: NopCritical{}})

	rd, err := d.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if rd.Humidity != 0x0190 {
		t.Fatalf("Humidity = %#04x, want 0x0190", rd.Humidity)
	}
	if rd.Temperature != 0x00C8 {
		t.Fatalf("Temperature = %#04x, want 0x00C8", rd.Temperature)
	}
	if !rd.Valid {
		t.Fatal("checksum should validate")
	}
	if rd.DeciRelHumidity() != 400 || rd.DeciCelsius() != 200 {
		t.Fatalf("fixed-point accessors: %d %d", rd.DeciRelHumidity(), rd.DeciCelsius())
	}

	// Wake sequence: drive low, raise, then float as input with pull-up.
	wantOps := []string{"out:low", "set:high", "in:up"}
	if !reflect.DeepEqual(line.ops, wantOps) {
		t.Fatalf("line ops = %v, want %v", line.ops, wantOps)
	}

	// The trace keeps every raw count, preamble included.
	for i, want := range counts {
		if rd.Trace[i] != want {
			t.Fatalf("Trace[%d] = %d, want %d", i, rd.Trace[i], want)
		}
	}
}

func TestRead_ChecksumMismatchIsData(t *testing.T) {
	counts := frameCounts([Buckets]uint8{0x02, 0x8C, 0x01, 0x01, 0x8F}, 10, 40)
	line := &fakeLine{levels: scriptPulses(counts)}
	d := New(line)
	d.Configure()

	rd, err := d.Read()
	if err != nil {
		t.Fatalf("a bad checksum must not fail the read: %v", err)
	}
	if rd.Valid {
		t.Fatal("checksum 0x8F against sum 0x90 should not validate")
	}
	if rd.Humidity != 0x028C || rd.Temperature != 0x0101 {
		t.Fatalf("reading = %#04x/%#04x, want 0x028C/0x0101", rd.Humidity, rd.Temperature)
	}
}

func TestRead_Idempotent(t *testing.T) {
	counts := frameCounts([Buckets]uint8{0x01, 0x90, 0x00, 0xC8, 0x59}, 14, 45)
	read := func() Reading {
		line := &fakeLine{levels: scriptPulses(counts)}
		d := New(line)
		d.Configure()
		rd, err := d.Read()
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		return rd
	}
	a, b := read(), read()
	if a != b {
		t.Fatalf("identical pulse input decoded differently:\n%+v\n%+v", a, b)
	}
}

func TestRead_LineStuckLow(t *testing.T) {
	line := &fakeLine{} // never goes high
	d := New(line)
	d.Configure(Config{StartCap: 500})

	if _, err := d.Read(); err != ErrLineStuck {
		t.Fatalf("err = %v, want ErrLineStuck", err)
	}
}

func TestRead_SaturationRunAborts(t *testing.T) {
	// A line wedged high saturates every sample; three in a row abort.
	levels := make([]bool, 800)
	for i := range levels {
		levels[i] = true
	}
	line := &fakeLine{levels: levels}
	d := New(line)
	d.Configure()

	if _, err := d.Read(); err != ErrAcquisition {
		t.Fatalf("err = %v, want ErrAcquisition", err)
	}
}

func TestRead_ThresholdBoundaryBits(t *testing.T) {
	// Counts exactly at the threshold decode as 0; one over decodes as 1.
	const threshold = 28
	counts := frameCounts([Buckets]uint8{0xFF, 0x00, 0xFF, 0x00, 0xFE}, threshold, threshold+1)
	line := &fakeLine{levels: scriptPulses(counts)}
	d := New(line)
	d.Configure(Config{Threshold: threshold})

	rd, err := d.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if rd.Humidity != 0xFF00 || rd.Temperature != 0xFF00 || !rd.Valid {
		t.Fatalf("boundary decode: %+v", rd)
	}
}

type recordingSink struct{ tags []string }

func (s *recordingSink) Emit(tag string, value int) { s.tags = append(s.tags, tag) }

func TestRead_DebugSinkOptional(t *testing.T) {
	counts := frameCounts([Buckets]uint8{0x01, 0x90, 0x00, 0xC8, 0x59}, 10, 40)

	sink := &recordingSink{}
	line := &fakeLine{levels: scriptPulses(counts)}
	d := New(line)
	d.Configure(Config{Debug: sink})
	if _, err := d.Read(); err != nil {
		t.Fatalf("Read: %v", err)
	}
	pulses := 0
	for _, tag := range sink.tags {
		if tag == "pulse" {
			pulses++
		}
	}
	if pulses != Transitions {
		t.Fatalf("emitted %d pulse records, want %d", pulses, Transitions)
	}

	// And the same frame must decode fine with no sink at all.
	line = &fakeLine{levels: scriptPulses(counts)}
	d2 := New(line)
	d2.Configure()
	if _, err := d2.Read(); err != nil {
		t.Fatalf("Read without sink: %v", err)
	}
}
