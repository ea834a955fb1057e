package monitor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	testCases := []struct {
		name   string
		line   string
		expect Record
	}{
		{"valid reading", "rht t=231 h=4520 ok=1 sat=0", Record{DeciC: 231, RHx100: 4520, Valid: true}},
		{"negative temperature", "rht t=-101 h=880 ok=1 sat=0", Record{DeciC: -101, RHx100: 880, Valid: true}},
		{"checksum mismatch", "rht t=257 h=6520 ok=0 sat=0", Record{DeciC: 257, RHx100: 6520}},
		{"saturated pulses", "rht t=0 h=0 ok=0 sat=3", Record{Saturated: 3}},
		{"surrounding whitespace", "  rht t=1 h=2 ok=1 sat=0 \r", Record{DeciC: 1, RHx100: 2, Valid: true}},
		{"trailing fields ignored", "rht t=1 h=2 ok=1 sat=0 fw=2", Record{DeciC: 1, RHx100: 2, Valid: true}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := ParseRecord(tc.line)
			require.NoError(t, err)
			require.Equal(t, tc.expect, rec)
		})
	}
}

func TestParseRecord_NotARecord(t *testing.T) {
	for _, line := range []string{
		"",
		"boot",
		"err line_stuck",
		"pulse=42",
		"rht t=1 h=2", // truncated
	} {
		_, err := ParseRecord(line)
		require.ErrorIs(t, err, ErrNotRecord, "line %q", line)
	}
}

func TestParseRecord_Malformed(t *testing.T) {
	for _, line := range []string{
		"rht t=abc h=2 ok=1 sat=0",
		"rht h=2 t=1 ok=1 sat=0", // wrong field order
		"rht t=1 h=2 ok=1 sat=-1",
		"rht t=99999 h=2 ok=1 sat=0",
	} {
		_, err := ParseRecord(line)
		require.Error(t, err, "line %q", line)
		require.NotErrorIs(t, err, ErrNotRecord, "line %q", line)
	}
}

func TestScanner(t *testing.T) {
	stream := strings.Join([]string{
		"boot",
		"rht t=231 h=4520 ok=1 sat=0",
		"rht t=garbage h=1 ok=1 sat=0", // malformed, skipped
		"err acquisition_failed",
		"rht t=-55 h=9900 ok=0 sat=1",
	}, "\r\n")

	sc := NewScanner(strings.NewReader(stream))

	require.True(t, sc.Scan())
	require.Equal(t, Record{DeciC: 231, RHx100: 4520, Valid: true}, sc.Record())

	require.True(t, sc.Scan())
	require.Equal(t, Record{DeciC: -55, RHx100: 9900, Saturated: 1}, sc.Record())

	require.False(t, sc.Scan())
	require.NoError(t, sc.Err())
	require.Equal(t, 1, sc.Skipped())
}
