// rht-monitor tails the debug UART of a board running the pico-rht firmware
// and prints its sensor readings in human units. Non-record output (boot
// banners, error lines) is passed through at higher verbosity.
//
//	rht-monitor -device /dev/ttyACM0
package main

import (
	"flag"
	"fmt"

	"github.com/golang/glog"

	"rhtcode-go/host/monitor"
	"rhtcode-go/host/serial"
)

var (
	device = flag.String("device", "/dev/ttyUSB0", "serial device the board's debug UART is on")
	baud   = flag.Int("baud", 115200, "baud rate")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	cfg.ReadTimeout = 0 // tail the port; a timeout would starve the scanner
	port, err := serial.Open(cfg)
	if err != nil {
		glog.Exitf("open %s: %v", *device, err)
	}
	defer port.Close()
	glog.Infof("monitoring %s at %d baud", *device, *baud)

	sc := monitor.NewScanner(port)
	for sc.Scan() {
		rec := sc.Record()
		line := fmt.Sprintf("%.1f C  %.2f %%RH", float64(rec.DeciC)/10, float64(rec.RHx100)/100)
		if !rec.Valid {
			line += "  [checksum mismatch]"
		}
		if rec.Saturated > 0 {
			line += fmt.Sprintf("  [%d saturated]", rec.Saturated)
		}
		fmt.Println(line)
	}
	if err := sc.Err(); err != nil {
		glog.Exitf("read: %v", err)
	}
	if n := sc.Skipped(); n > 0 {
		glog.Warningf("%d malformed records skipped", n)
	}
}
