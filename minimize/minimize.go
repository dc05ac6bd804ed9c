// Package minimize provides derivative-free scalar minimization for the
// curve-calibration layers: a golden-section local minimizer with a
// parabolic bracketing collaborator, and a mayfly-backed global minimizer
// for bound-constrained searches.
package minimize

import (
	"errors"
	"fmt"
)

// Func is a one-argument real function to be minimized. It is assumed to be
// side-effect free; it may be expensive and no caching is performed.
type Func func(x float64) float64

// ScalarMinimizer locates a local minimum of a one-dimensional function.
//
// Implementations are stateless with respect to the arguments passed in and
// are safe for concurrent use as long as the caller does not mutate state
// captured by the function itself.
type ScalarMinimizer interface {
	// Minimize returns the abscissa of a local minimum of f, starting from
	// the interval [lower, upper]. The interval need not be ordered and need
	// not already bracket the minimum; implementations may search outward.
	Minimize(f Func, lower, upper float64) (float64, error)

	// MinimizeFrom returns the abscissa of a local minimum of f starting
	// from a single position with no bounds. Not all algorithms support
	// this; those that require a bracketing interval return ErrUnsupported.
	MinimizeFrom(f Func, start float64) (float64, error)
}

var errNilFunc = errors.New("minimize: function must not be nil")

// ErrUnsupported is returned when a minimizer is called through an entry
// point its algorithm cannot support, such as an unbounded search with
// golden-section. Use errors.Is(err, ErrUnsupported) to check for it.
var ErrUnsupported = errors.New("minimize: operation not supported")

// BracketError reports that no bracketing triplet could be found within the
// bounded outward search. It signals a precondition failure on the caller's
// side (the interval does not lead to a minimum), not a defect.
type BracketError struct {
	Lower, Upper float64
	Probes       int
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("minimize: could not bracket a minimum starting from [%g, %g] after %d probes",
		e.Lower, e.Upper, e.Probes)
}

// ConvergenceError reports that an iteration cap was exceeded. For
// golden-section this should never happen once a valid bracket exists, so it
// indicates an internal inconsistency rather than a recoverable condition.
type ConvergenceError struct {
	Iterations int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("minimize: no convergence after %d iterations; "+
		"this should not happen because the minimum should have been successfully bracketed", e.Iterations)
}
