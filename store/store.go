// Package store persists minimization run records, piecewise-polynomial
// definitions, and iteration traces on the filesystem for the CLI and other
// calling layers. The numerical core itself never touches it.
package store

// Store defines the interface for run-record persistence.
// Implementations must be safe for concurrent use.
//
// Error handling conventions:
//   - Return nil on success
//   - Return a *NotFoundError if the run doesn't exist (for Load/Delete)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveRun atomically saves the record for the given run. An existing
	// record for the same runID is overwritten. Implementations should use
	// atomic write strategies (temp file + rename) to prevent corruption.
	SaveRun(runID string, rec *RunRecord) error

	// LoadRun retrieves the record for the given run.
	// Returns a *NotFoundError if no record exists for this runID.
	LoadRun(runID string) (*RunRecord, error)

	// ListRuns returns metadata for all stored runs. The returned slice may
	// be empty if no runs exist.
	ListRuns() ([]RunInfo, error)

	// DeleteRun removes the record and all associated artifacts for the
	// given run, including run.json and trace.jsonl.
	// Returns a *NotFoundError if no record exists for this runID.
	DeleteRun(runID string) error
}

// ErrNotFound is returned when a requested run does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing run record.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	if e.RunID != "" {
		return "run not found: " + e.RunID
	}
	return "run not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
