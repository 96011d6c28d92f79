package analysis

import (
	"encoding/json"
	"strconv"
)

// Value is a metric cell that may be undefined. Undefined cells are never
// reported as zero; they encode as JSON null.
type Value struct {
	Float   float64
	Defined bool
}

// Defined wraps a computed metric value
func Defined(v float64) Value {
	return Value{Float: v, Defined: true}
}

// Undefined returns the marker for a metric that has no meaning for the graph
func Undefined() Value {
	return Value{}
}

// Get returns the value and whether it is defined
func (v Value) Get() (float64, bool) {
	return v.Float, v.Defined
}

// String formats the value with four decimals, or "n/a" when undefined.
func (v Value) String() string {
	if !v.Defined {
		return "n/a"
	}
	return strconv.FormatFloat(v.Float, 'f', 4, 64)
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float)
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Undefined()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Defined(f)
	return nil
}
