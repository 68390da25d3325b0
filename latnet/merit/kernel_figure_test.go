package merit

import (
	"math"
	"testing"

	"latnetsearch/latnet/weights"
)

func TestKernelFigureRejectsWrongRowLength(t *testing.T) {
	w, err := weights.NewProduct([]float64{1})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	k, err := NewPalphaKernel(2)
	if err != nil {
		t.Fatalf("NewPalphaKernel: %v", err)
	}
	f, err := NewKernelFigure(w, k, 2, 4)
	if err != nil {
		t.Fatalf("NewKernelFigure: %v", err)
	}
	if err := f.Start(1, math.Inf(1)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := f.AddCoordinate(0, []float64{0, 0.25, 0.5}); err == nil {
		t.Fatal("expected AddCoordinate to reject a row with the wrong length")
	}
}

func TestKernelFigureFinishProducesFiniteMerit(t *testing.T) {
	w, err := weights.NewProduct([]float64{1, 1})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	k, err := NewPalphaKernel(2)
	if err != nil {
		t.Fatalf("NewPalphaKernel: %v", err)
	}
	f, err := NewKernelFigure(w, k, 2, 4)
	if err != nil {
		t.Fatalf("NewKernelFigure: %v", err)
	}
	if err := f.Start(2, math.Inf(1)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	points := []float64{0, 0.25, 0.5, 0.75}
	if err := f.AddCoordinate(0, points); err != nil {
		t.Fatalf("AddCoordinate(0): %v", err)
	}
	if err := f.AddCoordinate(1, points); err != nil {
		t.Fatalf("AddCoordinate(1): %v", err)
	}
	merit, err := f.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if math.IsNaN(merit) || math.IsInf(merit, 0) {
		t.Fatalf("merit = %g, want finite", merit)
	}
	if f.CurrentState() != Complete {
		t.Fatalf("state = %s, want Complete", f.CurrentState())
	}
}

func TestKernelFigureRejectsNonPositiveQ(t *testing.T) {
	w, err := weights.NewProduct([]float64{1})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	k, _ := NewPalphaKernel(2)
	if _, err := NewKernelFigure(w, k, -1, 4); err == nil {
		t.Fatal("expected NewKernelFigure to reject q <= 0")
	}
}

func TestKernelFigureRejectsZeroPoints(t *testing.T) {
	w, err := weights.NewProduct([]float64{1})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	k, _ := NewPalphaKernel(2)
	if _, err := NewKernelFigure(w, k, 2, 0); err == nil {
		t.Fatal("expected NewKernelFigure to reject n < 1")
	}
}
