package poly

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var errNilPolynomial = errors.New("poly: piecewise polynomial must not be nil")

// checkKeys rejects nil, empty, and non-finite query points before any
// evaluation happens.
func checkKeys(xs []float64) error {
	if xs == nil {
		return errors.New("poly: query points must not be nil")
	}
	if len(xs) == 0 {
		return errors.New("poly: query points must not be empty")
	}
	for i, x := range xs {
		if err := checkKey(x); err != nil {
			return fmt.Errorf("poly: query point %d: %w", i, err)
		}
	}
	return nil
}

func checkKey(x float64) error {
	if math.IsNaN(x) {
		return errors.New("query point is NaN")
	}
	if math.IsInf(x, 0) {
		return errors.New("query point is infinite")
	}
	return nil
}

// EvaluateAt evaluates the piecewise polynomial at a single point, returning
// one value per output channel. Points outside the knot range are evaluated
// by extrapolating the nearest interval's polynomial.
func EvaluateAt(pp *PiecewisePolynomial, x float64) ([]float64, error) {
	if pp == nil {
		return nil, errNilPolynomial
	}
	if err := checkKey(x); err != nil {
		return nil, fmt.Errorf("poly: %w", err)
	}
	out := make([]float64, pp.dim)
	for d := 0; d < pp.dim; d++ {
		out[d] = pp.valueAt(d, x)
	}
	return out, nil
}

// Evaluate evaluates the piecewise polynomial at each point of xs, returning
// a dim-by-len(xs) matrix: one row per output channel, one column per point.
func Evaluate(pp *PiecewisePolynomial, xs []float64) (*mat.Dense, error) {
	if pp == nil {
		return nil, errNilPolynomial
	}
	if err := checkKeys(xs); err != nil {
		return nil, err
	}
	out := mat.NewDense(pp.dim, len(xs), nil)
	for j, x := range xs {
		i := pp.interval(x)
		u := x - pp.knots[i]
		for d := 0; d < pp.dim; d++ {
			out.Set(d, j, pp.piece(i, d, u))
		}
	}
	return out, nil
}

// EvaluateBatch evaluates the piecewise polynomial over several point sets,
// returning one dim-by-len(xss[k]) matrix per set. The sets may have
// different lengths.
func EvaluateBatch(pp *PiecewisePolynomial, xss [][]float64) ([]*mat.Dense, error) {
	if pp == nil {
		return nil, errNilPolynomial
	}
	if xss == nil {
		return nil, errors.New("poly: query point sets must not be nil")
	}
	if len(xss) == 0 {
		return nil, errors.New("poly: query point sets must not be empty")
	}
	for k, xs := range xss {
		if xs == nil {
			return nil, fmt.Errorf("poly: point set %d must not be nil", k)
		}
		if len(xs) == 0 {
			return nil, fmt.Errorf("poly: point set %d must not be empty", k)
		}
		for i, x := range xs {
			if err := checkKey(x); err != nil {
				return nil, fmt.Errorf("poly: point set %d, point %d: %w", k, i, err)
			}
		}
	}
	out := make([]*mat.Dense, len(xss))
	for k, xs := range xss {
		m, err := Evaluate(pp, xs)
		if err != nil {
			return nil, err
		}
		out[k] = m
	}
	return out, nil
}

// DerivativeOf returns the piecewise polynomial representing the first
// derivative. Differentiating a constant piece (order 1) is invalid.
func DerivativeOf(pp *PiecewisePolynomial) (*PiecewisePolynomial, error) {
	if pp == nil {
		return nil, errNilPolynomial
	}
	if pp.order < 2 {
		return nil, fmt.Errorf("poly: cannot differentiate a piecewise polynomial of order %d", pp.order)
	}
	rows, _ := pp.coefs.Dims()
	coefs := mat.NewDense(rows, pp.order-1, nil)
	for r := 0; r < rows; r++ {
		row := pp.coefs.RawRowView(r)
		for j := 0; j < pp.order-1; j++ {
			// Column j carries degree order-1-j.
			coefs.Set(r, j, row[j]*float64(pp.order-1-j))
		}
	}
	return &PiecewisePolynomial{
		knots: pp.knots,
		coefs: coefs,
		order: pp.order - 1,
		dim:   pp.dim,
	}, nil
}

// DifferentiateAt evaluates the first derivative at a single point,
// returning one value per output channel.
func DifferentiateAt(pp *PiecewisePolynomial, x float64) ([]float64, error) {
	deriv, err := DerivativeOf(pp)
	if err != nil {
		return nil, err
	}
	return EvaluateAt(deriv, x)
}

// Differentiate evaluates the first derivative at each point of xs,
// returning a dim-by-len(xs) matrix.
func Differentiate(pp *PiecewisePolynomial, xs []float64) (*mat.Dense, error) {
	deriv, err := DerivativeOf(pp)
	if err != nil {
		return nil, err
	}
	return Evaluate(deriv, xs)
}

// DifferentiateTwiceAt evaluates the second derivative at a single point.
// The pieces must be at least quadratic (order 3).
func DifferentiateTwiceAt(pp *PiecewisePolynomial, x float64) ([]float64, error) {
	second, err := secondDerivativeOf(pp)
	if err != nil {
		return nil, err
	}
	return EvaluateAt(second, x)
}

// DifferentiateTwice evaluates the second derivative at each point of xs,
// returning a dim-by-len(xs) matrix. The pieces must be at least quadratic
// (order 3).
func DifferentiateTwice(pp *PiecewisePolynomial, xs []float64) (*mat.Dense, error) {
	second, err := secondDerivativeOf(pp)
	if err != nil {
		return nil, err
	}
	return Evaluate(second, xs)
}

func secondDerivativeOf(pp *PiecewisePolynomial) (*PiecewisePolynomial, error) {
	if pp == nil {
		return nil, errNilPolynomial
	}
	if pp.order < 3 {
		return nil, fmt.Errorf("poly: cannot differentiate a piecewise polynomial of order %d twice", pp.order)
	}
	first, err := DerivativeOf(pp)
	if err != nil {
		return nil, err
	}
	return DerivativeOf(first)
}

// AntiderivativeOf returns the piecewise polynomial F with F' = pp,
// continuous across interval boundaries and normalized so that F is zero at
// the first knot. Only single-channel polynomials can be integrated.
func AntiderivativeOf(pp *PiecewisePolynomial) (*PiecewisePolynomial, error) {
	if pp == nil {
		return nil, errNilPolynomial
	}
	if pp.dim != 1 {
		return nil, fmt.Errorf("poly: integration requires dim 1, got %d", pp.dim)
	}
	intervals := pp.Intervals()
	coefs := mat.NewDense(intervals, pp.order+1, nil)
	for i := 0; i < intervals; i++ {
		row := pp.coefs.RawRowView(i)
		for j := 0; j < pp.order; j++ {
			// Degree order-1-j integrates to degree order-j.
			coefs.Set(i, j, row[j]/float64(pp.order-j))
		}
	}
	anti := &PiecewisePolynomial{
		knots: pp.knots,
		coefs: coefs,
		order: pp.order + 1,
		dim:   1,
	}
	// Chain the integration constants so the antiderivative is continuous:
	// each interval's constant is the previous piece evaluated at its right
	// knot, carried forward as a running total.
	for i := 1; i < intervals; i++ {
		width := pp.knots[i] - pp.knots[i-1]
		coefs.Set(i, pp.order, anti.piece(i-1, 0, width))
	}
	return anti, nil
}

// IntegrateAt computes the definite integral of a single-channel piecewise
// polynomial from initialKey to x. The sign follows the integration bounds,
// so a query point left of initialKey yields the negated integral.
func IntegrateAt(pp *PiecewisePolynomial, initialKey, x float64) (float64, error) {
	if pp == nil {
		return 0, errNilPolynomial
	}
	if err := checkKey(initialKey); err != nil {
		return 0, fmt.Errorf("poly: initial key: %w", err)
	}
	if err := checkKey(x); err != nil {
		return 0, fmt.Errorf("poly: %w", err)
	}
	anti, err := AntiderivativeOf(pp)
	if err != nil {
		return 0, err
	}
	return anti.valueAt(0, x) - anti.valueAt(0, initialKey), nil
}

// Integrate computes the definite integral of a single-channel piecewise
// polynomial from initialKey to each point of xs, returning one value per
// point.
func Integrate(pp *PiecewisePolynomial, initialKey float64, xs []float64) (*mat.VecDense, error) {
	if pp == nil {
		return nil, errNilPolynomial
	}
	if err := checkKey(initialKey); err != nil {
		return nil, fmt.Errorf("poly: initial key: %w", err)
	}
	if err := checkKeys(xs); err != nil {
		return nil, err
	}
	anti, err := AntiderivativeOf(pp)
	if err != nil {
		return nil, err
	}
	base := anti.valueAt(0, initialKey)
	out := mat.NewVecDense(len(xs), nil)
	for j, x := range xs {
		out.SetVec(j, anti.valueAt(0, x)-base)
	}
	return out, nil
}
