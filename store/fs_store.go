package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ChinaQuants/Strata/poly"
)

// FSStore implements the Store interface using filesystem-based persistence.
// Records are stored in a directory structure: <baseDir>/runs/<runID>/
//
// Thread-safety: this implementation uses atomic file operations (rename)
// and does not require locks.
type FSStore struct {
	baseDir string
}

// NewFSStore creates a new filesystem-based store.
// The baseDir will be created if it doesn't exist.
func NewFSStore(baseDir string) (*FSStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &FSStore{baseDir: baseDir}, nil
}

// runDir returns the directory path for a given run ID.
func (fs *FSStore) runDir(runID string) string {
	return filepath.Join(fs.baseDir, "runs", runID)
}

// runPath returns the path to the run.json file for a run.
func (fs *FSStore) runPath(runID string) string {
	return filepath.Join(fs.runDir(runID), "run.json")
}

// SaveRun atomically saves the record for the given run using the
// temp file + rename pattern.
func (fs *FSStore) SaveRun(runID string, rec *RunRecord) error {
	if runID == "" {
		return fmt.Errorf("runID cannot be empty")
	}
	if rec == nil {
		return fmt.Errorf("record cannot be nil")
	}

	if err := os.MkdirAll(fs.runDir(runID), 0755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize run record: %w", err)
	}

	tempPath := fs.runPath(runID) + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp run file: %w", err)
	}

	finalPath := fs.runPath(runID)
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename run file: %w", err)
	}

	slog.Debug("Run record saved", "runID", runID, "path", finalPath)
	return nil
}

// LoadRun retrieves the record for the given run.
func (fs *FSStore) LoadRun(runID string) (*RunRecord, error) {
	if runID == "" {
		return nil, fmt.Errorf("runID cannot be empty")
	}

	data, err := os.ReadFile(fs.runPath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{RunID: runID}
		}
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}

	var rec RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to deserialize run record: %w", err)
	}
	return &rec, nil
}

// ListRuns returns metadata for all stored runs.
func (fs *FSStore) ListRuns() ([]RunInfo, error) {
	runsDir := filepath.Join(fs.baseDir, "runs")

	entries, err := os.ReadDir(runsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunInfo{}, nil
		}
		return nil, fmt.Errorf("failed to scan runs directory: %w", err)
	}

	infos := make([]RunInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rec, err := fs.LoadRun(entry.Name())
		if err != nil {
			// Skip directories without a readable record.
			slog.Warn("Skipping unreadable run", "runID", entry.Name(), "error", err)
			continue
		}
		infos = append(infos, RunInfo{
			RunID:     rec.RunID,
			Method:    rec.Method,
			Value:     rec.Value,
			Timestamp: rec.Timestamp,
		})
	}
	return infos, nil
}

// DeleteRun removes the record and all associated artifacts for the run.
func (fs *FSStore) DeleteRun(runID string) error {
	if runID == "" {
		return fmt.Errorf("runID cannot be empty")
	}

	if _, err := os.Stat(fs.runPath(runID)); os.IsNotExist(err) {
		return &NotFoundError{RunID: runID}
	}

	if err := os.RemoveAll(fs.runDir(runID)); err != nil {
		return fmt.Errorf("failed to delete run directory: %w", err)
	}

	slog.Debug("Run deleted", "runID", runID)
	return nil
}

// SavePolynomial writes a piecewise polynomial as JSON to the given path,
// using the temp file + rename pattern.
func SavePolynomial(path string, pp *poly.PiecewisePolynomial) error {
	pj, err := FromPolynomial(pp)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(pj, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize polynomial: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp polynomial file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename polynomial file: %w", err)
	}
	return nil
}

// LoadPolynomial reads and validates a piecewise polynomial from a JSON file.
func LoadPolynomial(path string) (*poly.PiecewisePolynomial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read polynomial file: %w", err)
	}

	var pj PolynomialJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, fmt.Errorf("failed to deserialize polynomial: %w", err)
	}
	pp, err := pj.ToPolynomial()
	if err != nil {
		return nil, fmt.Errorf("invalid polynomial in %s: %w", path, err)
	}
	return pp, nil
}
