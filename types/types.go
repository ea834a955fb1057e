package types

// ---- Capability kinds & info ----

type Kind string

const (
	KindLED         Kind = "led"
	KindTemperature Kind = "temperature"
	KindHumidity    Kind = "humidity"
)

// Info envelope each device/capability exposes.
type Info struct {
	SchemaVersion int         `json:"schema_version"`
	Driver        string      `json:"driver"`
	Detail        interface{} `json:"detail,omitempty"`
}

// ---- Temperature & humidity ----

type TemperatureInfo struct {
	Sensor string `json:"sensor"` // "rht03"
	Pin    int    `json:"pin"`    // data line pin number
}

type HumidityInfo struct {
	Sensor string `json:"sensor"`
	Pin    int    `json:"pin"`
}

type TemperatureValue struct {
	// Tenths of °C (e.g. 231 => 23.1°C).
	DeciC int16 `json:"deci_c"`
	// Valid is false when the frame checksum did not match; the value is
	// still reported, flagged unreliable.
	Valid bool `json:"valid"`
}

type HumidityValue struct {
	// Hundredths of %RH (0..10000 for 0..100.00%).
	RHx100 uint16 `json:"rh_x100"`
	Valid  bool   `json:"valid"`
}

// ---- LED capability (status blink) ----

type LEDInfo struct {
	Pin int `json:"pin"`
}

type LEDValue struct {
	Level uint8 `json:"level"` // 0 or 1
}
