package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setupTestStore creates a temporary directory and returns an FSStore for testing.
func setupTestStore(t *testing.T) (*FSStore, string) {
	t.Helper()

	tempDir := t.TempDir()
	fs, err := NewFSStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	return fs, tempDir
}

// createTestRecord creates a run record with test data.
func createTestRecord(runID string) *RunRecord {
	return &RunRecord{
		RunID:      runID,
		Method:     "golden",
		Function:   "(x-3)^2",
		Lower:      0,
		Upper:      10,
		Location:   3.0000000001,
		Value:      1e-20,
		Iterations: 61,
		Timestamp:  time.Now(),
	}
}

func TestSaveRun(t *testing.T) {
	fs, tempDir := setupTestStore(t)

	runID := "test-run-123"
	if err := fs.SaveRun(runID, createTestRecord(runID)); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	expectedPath := filepath.Join(tempDir, "runs", runID, "run.json")
	if _, err := os.Stat(expectedPath); os.IsNotExist(err) {
		t.Fatalf("Run file was not created at %s", expectedPath)
	}

	// Verify no temp file remains
	if _, err := os.Stat(expectedPath + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("Temp file should not exist after save")
	}
}

func TestSaveRunRejects(t *testing.T) {
	fs, _ := setupTestStore(t)

	if err := fs.SaveRun("", createTestRecord("any")); err == nil {
		t.Error("Expected error for empty runID")
	}
	if err := fs.SaveRun("some-run", nil); err == nil {
		t.Error("Expected error for nil record")
	}
}

func TestLoadRunRoundTrip(t *testing.T) {
	fs, _ := setupTestStore(t)

	runID := "round-trip"
	want := createTestRecord(runID)
	if err := fs.SaveRun(runID, want); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := fs.LoadRun(runID)
	if err != nil {
		t.Fatalf("LoadRun failed: %v", err)
	}

	if got.RunID != want.RunID || got.Method != want.Method || got.Function != want.Function {
		t.Errorf("Metadata mismatch: got %+v, want %+v", got, want)
	}
	if got.Location != want.Location || got.Value != want.Value || got.Iterations != want.Iterations {
		t.Errorf("Result mismatch: got %+v, want %+v", got, want)
	}
}

func TestLoadRunNotFound(t *testing.T) {
	fs, _ := setupTestStore(t)

	_, err := fs.LoadRun("does-not-exist")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.RunID != "does-not-exist" {
		t.Errorf("Expected *NotFoundError naming the run, got %v", err)
	}
}

func TestListRuns(t *testing.T) {
	fs, _ := setupTestStore(t)

	// Empty store lists no runs.
	infos, err := fs.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("Expected no runs, got %d", len(infos))
	}

	for _, id := range []string{"run-a", "run-b", "run-c"} {
		if err := fs.SaveRun(id, createTestRecord(id)); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", id, err)
		}
	}

	infos, err = fs.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(infos) != 3 {
		t.Errorf("Expected 3 runs, got %d", len(infos))
	}
}

func TestDeleteRun(t *testing.T) {
	fs, tempDir := setupTestStore(t)

	runID := "to-delete"
	if err := fs.SaveRun(runID, createTestRecord(runID)); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	if err := fs.DeleteRun(runID); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tempDir, "runs", runID)); !os.IsNotExist(err) {
		t.Error("Run directory should be removed")
	}

	if err := fs.DeleteRun(runID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if a == "" || b == "" {
		t.Fatal("Expected non-empty run IDs")
	}
	if a == b {
		t.Error("Expected unique run IDs")
	}
}
