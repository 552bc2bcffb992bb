// Package types defines the value domain shared by the page layout and the
// hash aggregation: dates, single-character flags and fixed-point decimals.
package types

import (
	"github.com/govalues/decimal"
	"github.com/pkg/errors"
)

// Numeric is a fixed-point decimal: an integer mantissa with an implied base-10
// scale. It wraps govalues/decimal so that arithmetic never touches a float.
type Numeric struct {
	dec decimal.Decimal
}

// NewNumeric builds a Numeric from a raw mantissa and a scale, i.e. the value
// mantissa * 10^-scale.
func NewNumeric(mantissa int64, scale int) Numeric {
	return Numeric{dec: decimal.MustNew(mantissa, scale)}
}

// Mantissa returns the integer mantissa of the value.
func (n Numeric) Mantissa() int64 {
	return int64(n.dec.Coef())
}

// Scale returns the implied base-10 divisor exponent.
func (n Numeric) Scale() int {
	return n.dec.Scale()
}

// Add returns n+o. Both operands must share the same scale.
func (n Numeric) Add(o Numeric) Numeric {
	if n.dec.Scale() != o.dec.Scale() {
		panic(errors.Errorf("numeric: scale mismatch in Add: %d != %d", n.dec.Scale(), o.dec.Scale()))
	}
	r, err := n.dec.Add(o.dec)
	if err != nil {
		panic(errors.WithStack(err))
	}
	return Numeric{dec: r}
}

// Sub returns n-o. Both operands must share the same scale.
func (n Numeric) Sub(o Numeric) Numeric {
	if n.dec.Scale() != o.dec.Scale() {
		panic(errors.Errorf("numeric: scale mismatch in Sub: %d != %d", n.dec.Scale(), o.dec.Scale()))
	}
	r, err := n.dec.Sub(o.dec)
	if err != nil {
		panic(errors.WithStack(err))
	}
	return Numeric{dec: r}
}

// Mul returns n*o at scale n.Scale()+o.Scale().
func (n Numeric) Mul(o Numeric) Numeric {
	r, err := n.dec.Mul(o.dec)
	if err != nil {
		panic(errors.WithStack(err))
	}
	return Numeric{dec: r}
}

// CastM2 rescales the value to scale 2.
func (n Numeric) CastM2() Numeric {
	return Numeric{dec: n.dec.Rescale(2)}
}

// Div returns n/o, rescaled to n's own scale (used for avg_x = sum_x / count).
func (n Numeric) Div(o Numeric) Numeric {
	r, err := n.dec.Quo(o.dec)
	if err != nil {
		panic(errors.WithStack(err))
	}
	r = r.Rescale(n.dec.Scale())
	return Numeric{dec: r}
}

// String formats the value with its implied scale.
func (n Numeric) String() string {
	return n.dec.String()
}

// One returns the Numeric<12,2> constant with raw mantissa 100, i.e. 1.00.
func One() Numeric {
	return NewNumeric(100, 2)
}
