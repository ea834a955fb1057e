// services/hal/adaptor_rht03.go
package hal

import (
	"context"
	"time"

	"rhtcode-go/drivers/rht03"
	"rhtcode-go/errcode"
	"rhtcode-go/types"
	"rhtcode-go/x/mathx"
)

// MinReadInterval is the datasheet floor between transactions. Reading more
// often returns stale or garbled frames, so pacing is enforced here, at the
// service layer; the core driver stays policy-free.
const MinReadInterval = 2 * time.Second

type rht03Adaptor struct {
	id  string
	pin int
	dev rht03.Device

	interval time.Duration
	lastRead time.Time

	trace     rht03.Trace
	haveTrace bool
}

// NewRHT03Adaptor wraps one sensor line as a split-phase Adaptor. The line
// is exclusively owned by this adaptor; configuring two adaptors on a
// shared line is a caller bug the layer does not defend against.
func NewRHT03Adaptor(id string, line rht03.Line, cfg rht03.Config, pin int) Adaptor {
	dev := rht03.New(line)
	dev.Configure(cfg)
	return &rht03Adaptor{id: id, pin: pin, dev: dev, interval: MinReadInterval}
}

func (a *rht03Adaptor) ID() string { return a.id }

func (a *rht03Adaptor) Capabilities() []CapInfo {
	return []CapInfo{
		{Kind: string(types.KindTemperature), Info: map[string]any{"unit": "C", "precision": 0.1, "schema_version": 1, "driver": "rht03", "pin": a.pin}},
		{Kind: string(types.KindHumidity), Info: map[string]any{"unit": "%RH", "precision": 0.1, "schema_version": 1, "driver": "rht03", "pin": a.pin}},
	}
}

// Trigger has no start command to send: the wake pulse is part of the
// transaction itself. The returned delay is whatever remains of the
// inter-reading interval.
func (a *rht03Adaptor) Trigger(ctx context.Context) (time.Duration, error) {
	wait := time.Until(a.lastRead.Add(a.interval))
	if wait < 0 {
		wait = 0
	}
	return wait, nil
}

func (a *rht03Adaptor) Collect(ctx context.Context) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !a.lastRead.IsZero() && time.Since(a.lastRead) < a.interval {
		return nil, ErrNotReady
	}

	rd, err := a.dev.Read()
	if err != nil {
		return nil, &errcode.E{C: errcode.MapDriverErr(err), Op: "rht03.read", Err: err}
	}
	a.lastRead = time.Now()
	a.trace = rd.Trace
	a.haveTrace = true

	// A checksum mismatch still yields a sample; Valid carries the verdict.
	decic := rd.DeciCelsius()
	rhx100 := uint16(mathx.Clamp(int(rd.DeciRelHumidity())*10, 0, 10000))

	ts := time.Now().UnixMilli()
	return Sample{
		{Kind: string(types.KindTemperature), Payload: types.TemperatureValue{DeciC: decic, Valid: rd.Valid}, TsMs: ts},
		{Kind: string(types.KindHumidity), Payload: types.HumidityValue{RHx100: rhx100, Valid: rd.Valid}, TsMs: ts},
	}, nil
}

// Control exposes diagnostics for the last transaction: method "trace"
// returns the raw pulse counts as []int, method "saturated" the number of
// counts that hit the configured cap. Kind is ignored; both capabilities
// share the one transaction.
func (a *rht03Adaptor) Control(kind, method string, payload any) (any, error) {
	switch method {
	case "trace":
		if !a.haveTrace {
			return nil, errcode.Busy
		}
		counts := make([]int, len(a.trace))
		for i, c := range a.trace {
			counts[i] = int(c)
		}
		return counts, nil
	case "saturated":
		if !a.haveTrace {
			return nil, errcode.Busy
		}
		return a.trace.Saturated(a.dev.Config().SampleCap), nil
	default:
		return nil, ErrUnsupported
	}
}
