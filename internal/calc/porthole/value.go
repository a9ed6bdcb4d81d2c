package porthole

import (
	"encoding/json"
	"math"
)

// Value is a derived quantity that is either a finite number or not available.
// The zero Value is not available.
type Value struct {
	v  float64
	ok bool
}

// NA is the not-available marker.
var NA = Value{}

// Of wraps x; NaN and ±Inf become NA.
func Of(x float64) Value {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return NA
	}
	return Value{v: x, ok: true}
}

func (a Value) Defined() bool { return a.ok }

// Float returns the number and whether it is defined.
func (a Value) Float() (float64, bool) { return a.v, a.ok }

// Or returns the number, or fallback when a is not available.
func (a Value) Or(fallback float64) float64 {
	if !a.ok {
		return fallback
	}
	return a.v
}

func (a Value) MarshalJSON() ([]byte, error) {
	if !a.ok {
		return []byte("null"), nil
	}
	return json.Marshal(a.v)
}

func (a *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = NA
		return nil
	}
	var x float64
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}
	*a = Of(x)
	return nil
}

func Add(a, b Value) Value {
	if !a.ok || !b.ok {
		return NA
	}
	return Of(a.v + b.v)
}

func Sub(a, b Value) Value {
	if !a.ok || !b.ok {
		return NA
	}
	return Of(a.v - b.v)
}

func Mul(a, b Value) Value {
	if !a.ok || !b.ok {
		return NA
	}
	return Of(a.v * b.v)
}

// Div is NA when the denominator is exactly zero.
func Div(a, b Value) Value {
	if !a.ok || !b.ok || b.v == 0 {
		return NA
	}
	return Of(a.v / b.v)
}

// Sqrt is NA for a negative radicand.
func Sqrt(a Value) Value {
	if !a.ok || a.v < 0 {
		return NA
	}
	return Of(math.Sqrt(a.v))
}

// Log10 is NA for a non-positive argument.
func Log10(a Value) Value {
	if !a.ok || a.v <= 0 {
		return NA
	}
	return Of(math.Log10(a.v))
}

// Pow is NA wherever math.Pow leaves the reals (negative base with a
// fractional exponent) or overflows (zero base with a negative exponent).
func Pow(base, exp Value) Value {
	if !base.ok || !exp.ok {
		return NA
	}
	return Of(math.Pow(base.v, exp.v))
}
