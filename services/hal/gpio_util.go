package hal

import "strings"

// Shared helpers used by GPIO code.

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// wantBool extracts a boolean from either a map payload (by key) or a scalar.
// Recognises true/false, 1/0, on/off, yes/no (case-insensitive).
func wantBool(src any, key string) bool {
	if m, ok := src.(map[string]any); ok {
		if v, ok := m[key]; ok {
			return wantBool(v, "")
		}
		return false
	}

	switch v := src.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint64:
		return v != 0
	case float32:
		return int(v) != 0
	case float64:
		return int(v) != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "on", "yes":
			return true
		default:
			return false
		}
	default:
		return false
	}
}

// wantInt extracts an integer the same way.
func wantInt(src any, key string) int {
	if m, ok := src.(map[string]any); ok {
		if v, ok := m[key]; ok {
			return wantInt(v, "")
		}
		return 0
	}

	switch v := src.(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	case uint64:
		return int(v)
	case float32:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
