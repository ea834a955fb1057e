//go:build rp2040

// Firmware demo for a Raspberry Pi Pico with an RHT03 data line on GP2.
// Decoded readings go out over UART0 as one record per transaction:
//
//	rht t=<deci_c> h=<rh_x100> ok=<0|1> sat=<n>
//
// which is the format host/monitor parses. The onboard LED blinks three
// times at boot and toggles once per successful reading.
package main

import (
	"context"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"rhtcode-go/drivers/rht03"
	"rhtcode-go/services/hal"
	"rhtcode-go/types"
)

const (
	dataPin = machine.GP2

	// Bring-up threshold for the default 125 MHz core clock. The poll
	// loop here is nowhere near one iteration per cycle, so this is a
	// measured value, not a scaled one; re-derive it via the config
	// package's calibration table when the clock changes.
	pulseThreshold = 50

	// Set to route the raw per-pulse trace out the UART as well.
	debugTrace = false
)

func main() {
	// Sensor boot plus USB/UART settle.
	time.Sleep(2 * time.Second)

	uart := uartx.UART0
	_ = uart.Configure(uartx.UARTConfig{BaudRate: 115200})
	sink := &uartSink{u: uart}

	led, err := hal.NewLEDAdaptor("led0", machinePin{machine.LED})
	if err == nil {
		_, _ = led.Control("led", "blink", map[string]any{"times": 3})
	}

	cfg := rht03.Config{
		Threshold: pulseThreshold,
		Critical:  rht03.IRQCritical{},
	}
	if debugTrace {
		cfg.Debug = sink
	}
	ad := hal.NewRHT03Adaptor("rht0", machinePin{dataPin}, cfg, int(dataPin))

	results := make(chan hal.Result, 4)
	w := hal.NewWorker(hal.WorkerConfig{}, results)
	w.Start(context.Background())

	// The adaptor's Trigger delay paces the loop to the datasheet's
	// 2-second floor; no ticker needed.
	for {
		w.Submit(hal.MeasureReq{ID: "rht0", Adaptor: ad})
		r := <-results
		if r.Err != nil {
			sink.writeError(r.Err)
			continue
		}
		emitRecord(sink, ad, r.Sample)
		if led != nil {
			_, _ = led.Control("led", "toggle", nil)
		}
	}
}

func emitRecord(sink *uartSink, ad hal.Adaptor, s hal.Sample) {
	var deciC int
	var rhx100 int
	valid := false
	for _, rd := range s {
		switch v := rd.Payload.(type) {
		case types.TemperatureValue:
			deciC = int(v.DeciC)
			valid = v.Valid
		case types.HumidityValue:
			rhx100 = int(v.RHx100)
		}
	}
	sink.writeRecord(deciC, rhx100, valid, saturated(ad))
}

// saturated asks the adaptor how many pulses hit the configured cap in the
// last transaction.
func saturated(ad hal.Adaptor) int {
	res, err := ad.Control(string(types.KindTemperature), "saturated", nil)
	if err != nil {
		return 0
	}
	n, ok := res.(int)
	if !ok {
		return 0
	}
	return n
}
