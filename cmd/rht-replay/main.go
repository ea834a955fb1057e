// rht-replay decodes a captured pulse trace off-target: feed it the 42
// iteration counts a firmware trace dump produced and it runs them through
// the real decoder, so threshold calibration can be tuned without
// re-flashing the board.
//
//	rht-replay -clock-hz 8000000 trace.txt
//	rht-replay -calib calib.yaml -clock-hz 12000000 -v trace.txt
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"rhtcode-go/config"
	"rhtcode-go/drivers/rht03"
)

var (
	calibPath = flag.String("calib", "", "calibration YAML; built-in table when empty")
	clockHz   = flag.Uint("clock-hz", 8_000_000, "polling clock the trace was captured at")
	showTrace = flag.Bool("trace", false, "print the per-pulse counts alongside the reading")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rht-replay [flags] <trace-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.Default()
	if *calibPath != "" {
		var err error
		if cfg, err = config.LoadFile(*calibPath); err != nil {
			glog.Exitf("load calibration: %v", err)
		}
	}
	drvCfg, err := cfg.DriverConfig(uint32(*clockHz))
	if err != nil {
		glog.Exitf("resolve threshold: %v", err)
	}
	drvCfg.WakeHoldMs = 1 // no sensor to wake
	glog.V(1).Infof("threshold %d at %d Hz", drvCfg.Threshold, *clockHz)

	counts, err := loadTrace(flag.Arg(0))
	if err != nil {
		glog.Exitf("load trace: %v", err)
	}

	dev := rht03.New(newReplayLine(counts))
	dev.Configure(drvCfg)
	rd, err := dev.Read()
	if err != nil {
		glog.Exitf("decode: %v", err)
	}

	fmt.Printf("temperature: %.1f C\n", float64(rd.DeciCelsius())/10)
	fmt.Printf("humidity:    %.2f %%RH\n", float64(rd.DeciRelHumidity())/10)
	fmt.Printf("checksum:    %s\n", verdict(rd.Valid))
	if sat := rd.Trace.Saturated(drvCfg.SampleCap); sat > 0 {
		fmt.Printf("saturated:   %d pulses\n", sat)
	}
	if *showTrace {
		fmt.Printf("trace:       %v\n", rd.Trace)
	}
}

func verdict(valid bool) string {
	if valid {
		return "ok"
	}
	return "MISMATCH"
}

// loadTrace reads whitespace-separated pulse counts, one transaction's worth.
func loadTrace(path string) ([rht03.Transitions]uint8, error) {
	var counts [rht03.Transitions]uint8
	data, err := os.ReadFile(path)
	if err != nil {
		return counts, err
	}
	fields := strings.Fields(string(data))
	if len(fields) != rht03.Transitions {
		return counts, fmt.Errorf("trace has %d counts, want %d", len(fields), rht03.Transitions)
	}
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return counts, fmt.Errorf("count %d: %w", i, err)
		}
		counts[i] = uint8(v)
	}
	return counts, nil
}

// replayLine plays back recorded pulse counts as line levels. Each pulse is
// rendered as a short low gap followed by count+1 highs: the decoder's
// start-wait consumes one high, the count loop sees the rest and its exit
// consumes the next gap.
type replayLine struct {
	levels []bool
	pos    int
}

func newReplayLine(counts [rht03.Transitions]uint8) *replayLine {
	l := &replayLine{}
	for _, c := range counts {
		l.levels = append(l.levels, false, false)
		for i := 0; i <= int(c); i++ {
			l.levels = append(l.levels, true)
		}
	}
	return l
}

func (l *replayLine) ConfigureInput(rht03.Pull) error { return nil }
func (l *replayLine) ConfigureOutput(bool) error      { return nil }
func (l *replayLine) Set(bool)                        {}
func (l *replayLine) Get() bool {
	if l.pos >= len(l.levels) {
		return false
	}
	v := l.levels[l.pos]
	l.pos++
	return v
}
