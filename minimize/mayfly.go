package minimize

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/mayfly"
)

// DefaultSpan is the half-width of the search interval Mayfly.MinimizeFrom
// centers on its start position.
const DefaultSpan = 10.0

// Mayfly adapts the external mayfly evolutionary optimizer to the
// ScalarMinimizer interface for one-dimensional bound-constrained searches.
// Unlike GoldenSection it performs a global search over the given interval
// and does not require the interval to bracket a single minimum.
type Mayfly struct {
	maxIters int
	popSize  int
	seed     int64
}

var _ ScalarMinimizer = (*Mayfly)(nil)

// NewMayfly creates a mayfly-backed scalar minimizer. The seed fixes the
// optimizer's random stream so runs are reproducible.
func NewMayfly(maxIters, popSize int, seed int64) *Mayfly {
	return &Mayfly{
		maxIters: maxIters,
		popSize:  popSize,
		seed:     seed,
	}
}

// Minimize searches [lower, upper] for the global minimum of f.
func (m *Mayfly) Minimize(f Func, lower, upper float64) (float64, error) {
	if f == nil {
		return 0, errNilFunc
	}
	if lower > upper {
		lower, upper = upper, lower
	}

	config := mayfly.NewDefaultConfig()
	config.ObjectiveFunc = func(x []float64) float64 { return f(x[0]) }
	config.ProblemSize = 1
	config.MaxIterations = m.maxIters
	config.NPop = m.popSize
	config.LowerBound = lower
	config.UpperBound = upper
	config.Rand = rand.New(rand.NewSource(m.seed))

	result, err := mayfly.Optimize(config)
	if err != nil {
		return 0, fmt.Errorf("mayfly optimization failed: %w", err)
	}
	return result.GlobalBest.Position[0], nil
}

// MinimizeFrom searches an interval of width 2*DefaultSpan centered on
// start. The population-based search has no notion of an unbounded domain,
// so a default span stands in for explicit bounds.
func (m *Mayfly) MinimizeFrom(f Func, start float64) (float64, error) {
	return m.Minimize(f, start-DefaultSpan, start+DefaultSpan)
}
