//go:build rp2040

package main

import (
	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"rhtcode-go/x/conv"
)

// uartSink writes diagnostics and reading records over the debug UART
// without touching fmt (keeps flash/RAM down on the MCU build).
type uartSink struct {
	u   *uartx.UART
	buf [20]byte
}

// Emit implements rht03.DebugSink.
func (s *uartSink) Emit(tag string, value int) {
	_, _ = s.u.Write([]byte(tag))
	_ = s.u.WriteByte('=')
	_, _ = s.u.Write(conv.Itoa(s.buf[:], int64(value)))
	s.crlf()
}

func (s *uartSink) writeRecord(deciC, rhx100 int, valid bool, saturated int) {
	s.field("rht t", deciC)
	s.field(" h", rhx100)
	if valid {
		s.field(" ok", 1)
	} else {
		s.field(" ok", 0)
	}
	s.field(" sat", saturated)
	s.crlf()
}

func (s *uartSink) writeError(err error) {
	_, _ = s.u.Write([]byte("err "))
	_, _ = s.u.Write([]byte(err.Error()))
	s.crlf()
}

func (s *uartSink) field(name string, v int) {
	_, _ = s.u.Write([]byte(name))
	_ = s.u.WriteByte('=')
	_, _ = s.u.Write(conv.Itoa(s.buf[:], int64(v)))
}

func (s *uartSink) crlf() {
	_ = s.u.WriteByte('\r')
	_ = s.u.WriteByte('\n')
}
