package measurement

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a raw field value. The concrete type is one of Numeric, Enum or
// Unparsed.
type Value interface {
	fmt.Stringer
	isValue()
}

// Numeric is a numeric reading.
type Numeric float64

// Enum is a non-numeric token such as a resolution or software version.
type Enum string

// Unparsed is blank input.
type Unparsed string

func (Numeric) isValue()  {}
func (Enum) isValue()     {}
func (Unparsed) isValue() {}

// String formats the number without trailing zeros.
func (n Numeric) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Finite reports whether the number is neither NaN nor infinite.
func (n Numeric) Finite() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (e Enum) String() string {
	return string(e)
}

func (u Unparsed) String() string {
	return string(u)
}

// Parse classifies raw text. Blank text is Unparsed, finite numbers are
// Numeric and everything else is Enum.
func Parse(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Unparsed(raw)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && Numeric(f).Finite() {
		return Numeric(f)
	}
	return Enum(s)
}

// FromAny converts a decoded JSON or YAML scalar into a Value.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Unparsed(""), nil
	case Value:
		return t, nil
	case string:
		return Parse(t), nil
	case float64:
		return Numeric(t), nil
	case float32:
		return Numeric(t), nil
	case int:
		return Numeric(t), nil
	case int64:
		return Numeric(t), nil
	case uint64:
		return Numeric(t), nil
	case json.Number:
		return Parse(t.String()), nil
	case bool:
		return Enum(strconv.FormatBool(t)), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// AsNumber coerces v to a number. It fails for Enum text that is not a
// finite number and for Unparsed values.
func AsNumber(v Value) (float64, bool) {
	switch t := v.(type) {
	case Numeric:
		return float64(t), t.Finite()
	case Enum:
		if n, ok := Parse(string(t)).(Numeric); ok {
			return float64(n), true
		}
	}
	return 0, false
}

// AsToken coerces v to an enumerated token. Integral numbers keep one decimal
// place so that 2 matches the version token "2.0".
func AsToken(v Value) (string, bool) {
	switch t := v.(type) {
	case Enum:
		return string(t), true
	case Numeric:
		if !t.Finite() {
			return "", false
		}
		f := float64(t)
		if f == math.Trunc(f) {
			return strconv.FormatFloat(f, 'f', 1, 64), true
		}
		return t.String(), true
	}
	return "", false
}

// IsBlank reports whether v carries no input.
func IsBlank(v Value) bool {
	if v == nil {
		return true
	}
	u, ok := v.(Unparsed)
	return ok && strings.TrimSpace(string(u)) == ""
}
