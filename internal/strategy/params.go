package strategy

import "strings"

// Params is one concrete parameter assignment for a strategy run. Values
// come from YAML/JSON, so numbers may arrive as int or float64.
type Params map[string]any

// Str returns the string value for key, or def when absent or blank.
func (p Params) Str(key, def string) string {
	if v, ok := p[key]; ok && v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return def
}

// Num returns the numeric value for key, or def when absent or non-numeric.
func (p Params) Num(key string, def float64) float64 {
	v, ok := p[key]
	if !ok || v == nil {
		return def
	}
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint64:
		return float64(x)
	default:
		return def
	}
}

// Int returns the integer value for key, or def when absent or non-numeric.
func (p Params) Int(key string, def int) int {
	return int(p.Num(key, float64(def)))
}
