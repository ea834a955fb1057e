// Package monitor parses the line-oriented records the pico-rht firmware
// emits over its debug UART.
package monitor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Record is one decoded sensor transaction as reported by the firmware.
type Record struct {
	DeciC     int16  // tenths of °C
	RHx100    uint16 // hundredths of %RH
	Valid     bool   // frame checksum verdict
	Saturated int    // capped pulses in the transaction
}

// ErrNotRecord marks lines that are not "rht ..." records (boot banners,
// error lines, trace output); callers usually skip these.
var ErrNotRecord = errors.New("monitor: not a reading record")

// ParseRecord parses one line of the form
//
//	rht t=<deci_c> h=<rh_x100> ok=<0|1> sat=<n>
//
// Field order is fixed; unknown trailing fields are ignored so the format
// can grow without breaking old monitors.
func ParseRecord(line string) (Record, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) < 5 || fields[0] != "rht" {
		return Record{}, ErrNotRecord
	}

	var rec Record
	for i, def := range []struct {
		key string
		set func(int64) error
	}{
		{"t", func(v int64) error {
			if v < -32768 || v > 32767 {
				return fmt.Errorf("t out of range: %d", v)
			}
			rec.DeciC = int16(v)
			return nil
		}},
		{"h", func(v int64) error {
			if v < 0 || v > 65535 {
				return fmt.Errorf("h out of range: %d", v)
			}
			rec.RHx100 = uint16(v)
			return nil
		}},
		{"ok", func(v int64) error {
			rec.Valid = v != 0
			return nil
		}},
		{"sat", func(v int64) error {
			if v < 0 {
				return fmt.Errorf("sat negative: %d", v)
			}
			rec.Saturated = int(v)
			return nil
		}},
	} {
		field := fields[i+1]
		val, ok := strings.CutPrefix(field, def.key+"=")
		if !ok {
			return Record{}, fmt.Errorf("monitor: field %d is %q, want %s=...", i+1, field, def.key)
		}
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("monitor: field %s: %w", def.key, err)
		}
		if err := def.set(n); err != nil {
			return Record{}, fmt.Errorf("monitor: %w", err)
		}
	}
	return rec, nil
}

// Scanner reads records from a stream, skipping non-record lines.
type Scanner struct {
	s    *bufio.Scanner
	rec  Record
	err  error
	skip int
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{s: bufio.NewScanner(r)}
}

// Scan advances to the next record. It returns false at stream end or on a
// read error; malformed and unrelated lines are counted, not fatal.
func (sc *Scanner) Scan() bool {
	for sc.s.Scan() {
		rec, err := ParseRecord(sc.s.Text())
		if err != nil {
			if !errors.Is(err, ErrNotRecord) {
				sc.skip++
			}
			continue
		}
		sc.rec = rec
		return true
	}
	sc.err = sc.s.Err()
	return false
}

// Record returns the record from the last successful Scan.
func (sc *Scanner) Record() Record { return sc.rec }

// Skipped reports how many malformed record lines were dropped.
func (sc *Scanner) Skipped() int { return sc.skip }

// Err returns the terminal read error, if any.
func (sc *Scanner) Err() error { return sc.err }
