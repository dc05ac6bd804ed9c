// Package poly evaluates, differentiates, and integrates piecewise
// polynomials: functions defined by a different polynomial on each
// sub-interval between consecutive knots. The curve-construction layers
// produce the coefficient matrices; this package only reads them.
package poly

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// PiecewisePolynomial is an immutable piecewise-polynomial representation.
//
// For n knots there are n-1 intervals. The coefficient matrix has
// dim*(n-1) rows and order columns: row block k of size dim holds the
// coefficients of the dim output channels on interval k, each row ordered
// from the highest-degree coefficient down to the constant term. The
// coefficients are relative to the left knot of their interval, so piece k
// is evaluated at u = x - knots[k].
type PiecewisePolynomial struct {
	knots []float64
	coefs *mat.Dense
	order int
	dim   int
}

// NewPiecewisePolynomial validates and wraps a piecewise-polynomial
// representation. The knots must be strictly increasing and finite, order
// (coefficients per piece) and dim (output channels) must be at least 1,
// and coefs must have dim*(len(knots)-1) rows and order columns.
func NewPiecewisePolynomial(knots []float64, coefs *mat.Dense, order, dim int) (*PiecewisePolynomial, error) {
	if len(knots) < 2 {
		return nil, fmt.Errorf("poly: need at least 2 knots, got %d", len(knots))
	}
	if coefs == nil {
		return nil, errors.New("poly: coefficient matrix must not be nil")
	}
	if order < 1 {
		return nil, fmt.Errorf("poly: order must be at least 1, got %d", order)
	}
	if dim < 1 {
		return nil, fmt.Errorf("poly: dim must be at least 1, got %d", dim)
	}
	for i, k := range knots {
		if math.IsNaN(k) || math.IsInf(k, 0) {
			return nil, fmt.Errorf("poly: knot %d is not finite: %v", i, k)
		}
		if i > 0 && k <= knots[i-1] {
			return nil, fmt.Errorf("poly: knots must be strictly increasing, knot %d (%g) <= knot %d (%g)",
				i, k, i-1, knots[i-1])
		}
	}
	rows, cols := coefs.Dims()
	if wantRows := dim * (len(knots) - 1); rows != wantRows {
		return nil, fmt.Errorf("poly: coefficient matrix has %d rows, want dim*(knots-1) = %d", rows, wantRows)
	}
	if cols != order {
		return nil, fmt.Errorf("poly: coefficient matrix has %d columns, want order = %d", cols, order)
	}

	kcopy := make([]float64, len(knots))
	copy(kcopy, knots)
	return &PiecewisePolynomial{
		knots: kcopy,
		coefs: mat.DenseCopyOf(coefs),
		order: order,
		dim:   dim,
	}, nil
}

// Knots returns a copy of the knot sequence.
func (pp *PiecewisePolynomial) Knots() []float64 {
	out := make([]float64, len(pp.knots))
	copy(out, pp.knots)
	return out
}

// Coefficients returns a copy of the coefficient matrix.
func (pp *PiecewisePolynomial) Coefficients() *mat.Dense {
	return mat.DenseCopyOf(pp.coefs)
}

// Order returns the number of coefficients per polynomial piece.
func (pp *PiecewisePolynomial) Order() int { return pp.order }

// Dim returns the number of independent output channels.
func (pp *PiecewisePolynomial) Dim() int { return pp.dim }

// Intervals returns the number of polynomial pieces.
func (pp *PiecewisePolynomial) Intervals() int { return len(pp.knots) - 1 }

// interval returns the index i with knots[i] <= x < knots[i+1]. The final
// interval is closed on both ends, and points outside the knot range map to
// the nearest interval so the caller extrapolates its polynomial.
func (pp *PiecewisePolynomial) interval(x float64) int {
	n := len(pp.knots)
	i := sort.Search(n, func(j int) bool { return pp.knots[j] > x }) - 1
	if i < 0 {
		return 0
	}
	if i > n-2 {
		return n - 2
	}
	return i
}

// piece evaluates output channel d of interval i at local coordinate u by
// Horner's method.
func (pp *PiecewisePolynomial) piece(i, d int, u float64) float64 {
	row := pp.coefs.RawRowView(i*pp.dim + d)
	var v float64
	for _, c := range row {
		v = v*u + c
	}
	return v
}

// valueAt evaluates channel d at x, extrapolating outside the knot range.
func (pp *PiecewisePolynomial) valueAt(d int, x float64) float64 {
	i := pp.interval(x)
	return pp.piece(i, d, x-pp.knots[i])
}
