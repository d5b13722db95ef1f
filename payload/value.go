package payload

import (
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// toFloat converts a decoded JSON number to float64. Besides json.Number it
// accepts the Go numeric kinds produced by other decoders (encoding/json
// without UseNumber, yaml.v3) and by typed construction.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		p, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		f = p
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toInt converts a decoded JSON number with an integral value to int64.
// 3 and 3.0 are both accepted; 3.5 is not.
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return i, true
		}
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// cloneValue returns a deep copy of a generic value tree. Objects and arrays
// are copied; scalars are shared. It fails when the tree nests deeper than the
// encoder accepts, which also stops on cyclic maps.
func cloneValue(v any, depth int) (any, bool) {
	if depth > maxDepth {
		return nil, false
	}
	switch x := v.(type) {
	case map[string]any:
		return cloneObject(x, depth)
	case []any:
		if x == nil {
			return x, true
		}
		out := make([]any, len(x))
		for i, e := range x {
			c, ok := cloneValue(e, depth+1)
			if !ok {
				return nil, false
			}
			out[i] = c
		}
		return out, true
	}
	return v, true
}

func cloneObject(m map[string]any, depth int) (map[string]any, bool) {
	if m == nil {
		return nil, true
	}
	out := make(map[string]any, len(m))
	for k, e := range m {
		c, ok := cloneValue(e, depth+1)
		if !ok {
			return nil, false
		}
		out[k] = c
	}
	return out, true
}

// CloneValue returns a deep copy of v for storage next to a validated APS,
// such as the custom keys of a payload document. A tree nested deeper than
// Encode accepts yields a too_deep violation at path instead.
func CloneValue(path string, v any) (any, Violations) {
	c := &checker{}
	out, _ := c.value(path, v)
	return out, c.out
}

// describe renders a decoded value for violation messages.
func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return string(x)
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	if _, ok := toFloat(v); ok {
		return fmt.Sprint(v)
	}
	return fmt.Sprintf("%T", v)
}
