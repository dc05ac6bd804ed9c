package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/ChinaQuants/Strata/poly"
)

// RunRecord describes one completed (or failed) minimization run.
// All fields are serialized to JSON for persistence.
type RunRecord struct {
	// RunID is the unique identifier for this run
	RunID string `json:"runId"`

	// Method names the minimizer used: "golden" or "mayfly"
	Method string `json:"method"`

	// Function is a human-readable label for the objective
	Function string `json:"function,omitempty"`

	// Lower and Upper are the interval the search started from
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`

	// Location and Value are the minimizer abscissa and objective value
	// found; unset when the run failed
	Location float64 `json:"location"`
	Value    float64 `json:"value"`

	// Iterations is how many golden-section iterations were observed,
	// zero when the minimizer does not report them
	Iterations int `json:"iterations,omitempty"`

	// Error carries the failure message when the run did not converge
	Error string `json:"error,omitempty"`

	// Timestamp records when the run finished
	Timestamp time.Time `json:"timestamp"`
}

// RunInfo is lightweight metadata about a stored run, for listings.
type RunInfo struct {
	RunID     string    `json:"runId"`
	Method    string    `json:"method"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRunID returns a fresh unique run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// PolynomialJSON is the serialized form of a piecewise polynomial: the knot
// sequence plus the coefficient matrix row by row, highest degree first.
type PolynomialJSON struct {
	Knots        []float64   `json:"knots"`
	Coefficients [][]float64 `json:"coefficients"`
	Order        int         `json:"order"`
	Dim          int         `json:"dim"`
}

// FromPolynomial converts a piecewise polynomial to its serialized form.
func FromPolynomial(pp *poly.PiecewisePolynomial) (*PolynomialJSON, error) {
	if pp == nil {
		return nil, fmt.Errorf("polynomial cannot be nil")
	}
	coefs := pp.Coefficients()
	rows, cols := coefs.Dims()
	out := &PolynomialJSON{
		Knots:        pp.Knots(),
		Coefficients: make([][]float64, rows),
		Order:        pp.Order(),
		Dim:          pp.Dim(),
	}
	for r := 0; r < rows; r++ {
		row := make([]float64, cols)
		mat.Row(row, r, coefs)
		out.Coefficients[r] = row
	}
	return out, nil
}

// ToPolynomial reconstructs and validates the piecewise polynomial. The
// shape fields are checked here before any matrix is built, so malformed
// input fails with an error rather than a panic.
func (pj *PolynomialJSON) ToPolynomial() (*poly.PiecewisePolynomial, error) {
	if pj.Order < 1 {
		return nil, fmt.Errorf("polynomial order must be at least 1, got %d", pj.Order)
	}
	if len(pj.Knots) < 2 {
		return nil, fmt.Errorf("polynomial needs at least 2 knots, got %d", len(pj.Knots))
	}
	if len(pj.Coefficients) == 0 {
		return nil, fmt.Errorf("polynomial has no coefficient rows")
	}
	data := make([]float64, 0, len(pj.Coefficients)*pj.Order)
	for r, row := range pj.Coefficients {
		if len(row) != pj.Order {
			return nil, fmt.Errorf("coefficient row %d has %d entries, want order = %d", r, len(row), pj.Order)
		}
		data = append(data, row...)
	}
	coefs := mat.NewDense(len(pj.Coefficients), pj.Order, data)
	return poly.NewPiecewisePolynomial(pj.Knots, coefs, pj.Order, pj.Dim)
}
