package minimize

import "math"

const (
	// golden is (sqrt(5)-1)/2, the fraction of the larger sub-interval kept
	// at each step.
	golden = 0.6180339887498949
	// eps is the relative width at which the bracket counts as converged.
	eps = 1e-12
	// maxIter caps the golden-section loop. A correctly bracketed interval
	// converges long before this, so exceeding it is a defect.
	maxIter = 10000
)

// Iteration describes the state of the golden-section loop after one step,
// for observers that record convergence traces.
type Iteration struct {
	N     int     // iteration number, starting at 1
	X     float64 // better of the two interior points
	FX    float64 // function value at X
	Width float64 // current outer bracket width |x3 - x0|
}

// GoldenSection minimizes a one-dimensional function by golden-section
// search. It requires a bracketing interval: the unbounded MinimizeFrom
// entry point always fails with ErrUnsupported.
//
// The zero value is ready to use. Bracketing is delegated to a
// ParabolicBracketer, so the initial interval only needs to point at a
// minimum, not contain one.
type GoldenSection struct {
	// Observer, when non-nil, is invoked once per iteration with the
	// current best interior point. It must not mutate captured state the
	// function reads.
	Observer func(Iteration)

	bracketer ParabolicBracketer
}

var _ ScalarMinimizer = (*GoldenSection)(nil)

// Minimize returns the abscissa of the minimum of f bracketed by searching
// from [lower, upper], to a relative tolerance of 1e-12.
func (g *GoldenSection) Minimize(f Func, lower, upper float64) (float64, error) {
	if f == nil {
		return 0, errNilFunc
	}
	br, err := g.bracketer.BracketOut(f, lower, upper)
	if err != nil {
		return 0, err
	}

	x0, x3 := br.A, br.C
	var x1, x2 float64
	if math.Abs(br.C-br.B) > math.Abs(br.B-br.A) {
		x1 = br.B
		x2 = br.C + golden*(br.B-br.C)
	} else {
		x2 = br.B
		x1 = br.A + golden*(br.B-br.A)
	}
	f1 := f(x1)
	f2 := f(x2)

	// One new function evaluation per iteration; the other three values
	// carry over from the previous step.
	for i := 1; math.Abs(x3-x0) > eps*(math.Abs(x1)+math.Abs(x2)); i++ {
		if i > maxIter {
			return 0, &ConvergenceError{Iterations: maxIter}
		}
		if f2 < f1 {
			next := golden*(x2-x3) + x3
			x0, x1, x2 = x1, x2, next
			f1, f2 = f2, f(next)
		} else {
			next := golden*(x1-x0) + x0
			x3, x2, x1 = x2, x1, next
			f2, f1 = f1, f(next)
		}
		if g.Observer != nil {
			it := Iteration{N: i, X: x1, FX: f1, Width: math.Abs(x3 - x0)}
			if f2 < f1 {
				it.X, it.FX = x2, f2
			}
			g.Observer(it)
		}
	}
	if f1 < f2 {
		return x1, nil
	}
	return x2, nil
}

// MinimizeFrom is not supported: golden-section search inherently needs a
// bracketing interval.
func (g *GoldenSection) MinimizeFrom(f Func, start float64) (float64, error) {
	return 0, ErrUnsupported
}
