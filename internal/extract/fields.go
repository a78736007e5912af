package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coerced is the outcome of a best-effort integer decode. Err is nil when Value
// came from the model output and non-nil when Value is the zero default.
type Coerced struct {
	Value int64
	Err   error
}

// Decoded reports whether Value is real model output.
func (c Coerced) Decoded() bool { return c.Err == nil }

// CoerceInt converts a decoded JSON value to an integer. Numbers and numeric
// strings are truncated toward zero; anything else yields 0 and an error.
func CoerceInt(raw any) Coerced {
	switch v := raw.(type) {
	case float64:
		return fromFloat(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return Coerced{Value: n}
		}
		f, err := v.Float64()
		if err != nil {
			return Coerced{Err: err}
		}
		return fromFloat(f)
	case int:
		return Coerced{Value: int64(v)}
	case int64:
		return Coerced{Value: v}
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Coerced{Value: n}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Coerced{Err: fmt.Errorf("cannot convert %q to integer", v)}
		}
		return fromFloat(f)
	case nil:
		return Coerced{Err: fmt.Errorf("value missing")}
	default:
		return Coerced{Err: fmt.Errorf("cannot convert %T to integer", raw)}
	}
}

func fromFloat(f float64) Coerced {
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if math.IsNaN(f) || f >= 1<<63 || f < -(1<<63) {
		return Coerced{Err: fmt.Errorf("number %v out of range", f)}
	}
	return Coerced{Value: int64(f)}
}

// String returns m[key] when it is a non-empty string, else def.
func String(m map[string]any, key, def string) string {
	if s, ok := m[key].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return def
}

// Int returns m[key] coerced to int, else def.
func Int(m map[string]any, key string, def int) int {
	c := CoerceInt(m[key])
	if !c.Decoded() {
		return def
	}
	return int(c.Value)
}

// Float returns m[key] as a float64, accepting numeric strings, else def.
func Float(m map[string]any, key string, def float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

// Strings returns the string elements of the array at m[key]. Non-string
// elements are formatted with %v.
func Strings(m map[string]any, key string) []string {
	items, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case string:
			out = append(out, v)
		case nil:
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}

// Maps returns the object elements of the array at m[key], skipping anything else.
func Maps(m map[string]any, key string) []map[string]any {
	items, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if obj, ok := it.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}
