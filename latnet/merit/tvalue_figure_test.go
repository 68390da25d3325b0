package merit

import (
	"math"
	"testing"

	"latnetsearch/internal/gf2"
	"latnetsearch/latnet/weights"
)

func identityMatrix(n int) *gf2.Matrix {
	m := gf2.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		row := make([]bool, n)
		row[i] = true
		m.SetRow(i, row)
	}
	return m
}

func TestTValueFigureSingleDimensionIsZero(t *testing.T) {
	w, err := weights.NewProduct([]float64{1})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	f, err := NewTValueFigure(w, 2)
	if err != nil {
		t.Fatalf("NewTValueFigure: %v", err)
	}
	f.Start(math.Inf(1))
	if err := f.AddCoordinate(identityMatrix(3)); err != nil {
		t.Fatalf("AddCoordinate: %v", err)
	}
	merit, err := f.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if merit != 0 {
		t.Fatalf("merit = %g, want 0 (single dimension always has t=0)", merit)
	}
	if f.CurrentState() != Complete {
		t.Fatalf("state = %s, want Complete", f.CurrentState())
	}
}

func TestTValueFigureAbortsWhenPartialExceedsBest(t *testing.T) {
	w, err := weights.NewProduct([]float64{1, 1})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	f, err := NewTValueFigure(w, 2)
	if err != nil {
		t.Fatalf("NewTValueFigure: %v", err)
	}
	// A single dimension contributes t=0, so the partial merit is 0; a
	// threshold of -1 is one that no nonnegative partial can ever beat.
	f.Start(-1)
	err = f.AddCoordinate(identityMatrix(3))
	if err == nil {
		t.Fatal("expected AddCoordinate to report an abort when bestSoFar is unreachable")
	}
	if f.CurrentState() != Aborted {
		t.Fatalf("state = %s, want Aborted", f.CurrentState())
	}
}

func TestTValueFigureRejectsNonPositiveQ(t *testing.T) {
	w, err := weights.NewProduct([]float64{1})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	if _, err := NewTValueFigure(w, 0); err == nil {
		t.Fatal("expected NewTValueFigure to reject q <= 0")
	}
}
