package minimize

import (
	"math"
	"testing"
)

func TestMayflyQuadratic(t *testing.T) {
	m := NewMayfly(100, 20, 42)
	f := func(x float64) float64 { return (x - 3) * (x - 3) }

	loc, err := m.Minimize(f, 0, 10)
	if err != nil {
		t.Fatalf("Minimize failed: %v", err)
	}
	if math.Abs(loc-3) > 0.05 {
		t.Errorf("Expected minimum near 3, got %v", loc)
	}
}

func TestMayflyReversedBounds(t *testing.T) {
	m := NewMayfly(100, 20, 42)
	f := func(x float64) float64 { return (x - 3) * (x - 3) }

	loc, err := m.Minimize(f, 10, 0)
	if err != nil {
		t.Fatalf("Minimize failed: %v", err)
	}
	if math.Abs(loc-3) > 0.05 {
		t.Errorf("Expected minimum near 3, got %v", loc)
	}
}

func TestMayflyDeterministic(t *testing.T) {
	f := func(x float64) float64 { return x*x + math.Sin(5*x) }

	// popSize must be >= 20 for mayfly v0.1.0.
	loc1, err := NewMayfly(50, 20, 123).Minimize(f, -5, 5)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	loc2, err := NewMayfly(50, 20, 123).Minimize(f, -5, 5)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if loc1 != loc2 {
		t.Errorf("Non-deterministic: loc1=%v, loc2=%v", loc1, loc2)
	}
}

func TestMayflyMinimizeFrom(t *testing.T) {
	m := NewMayfly(100, 20, 42)
	f := func(x float64) float64 { return (x - 3) * (x - 3) }

	loc, err := m.MinimizeFrom(f, 0)
	if err != nil {
		t.Fatalf("MinimizeFrom failed: %v", err)
	}
	if math.Abs(loc-3) > 0.05 {
		t.Errorf("Expected minimum near 3, got %v", loc)
	}
}

func TestMayflyNilFunc(t *testing.T) {
	m := NewMayfly(100, 20, 42)

	if _, err := m.Minimize(nil, 0, 1); err == nil {
		t.Fatal("Expected error for nil function")
	}
}
