package search

import (
	"math"
	"testing"

	"latnetsearch/latnet/construct"
	"latnetsearch/latnet/merit"
	"latnetsearch/latnet/weights"
)

// TestNetExhaustiveSingleCoordinateHasZeroMerit drives the full driver over a
// Polynomial construction (its value space is finite, unlike Explicit's):
// a single coordinate always has t=0, so the winning merit must be 0.
func TestNetExhaustiveSingleCoordinateHasZeroMerit(t *testing.T) {
	method, err := construct.NewPolynomial(2, []int{0, 1, 2}) // x^2+x+1
	if err != nil {
		t.Fatalf("NewPolynomial: %v", err)
	}
	w, err := weights.NewProduct([]float64{1})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	fig, err := merit.NewTValueFigure(w, 2)
	if err != nil {
		t.Fatalf("NewTValueFigure: %v", err)
	}
	obs := NewMinimumObserver()
	_, bestMerit, err := RunNetSearch(Exhaustive, method, 1, fig, obs, RandomOpts{})
	if err != nil {
		t.Fatalf("RunNetSearch: %v", err)
	}
	if bestMerit != 0 {
		t.Fatalf("bestMerit = %g, want 0 (a single coordinate always has t=0)", bestMerit)
	}
}

// Explicit's value space is unbounded (the generating value IS the
// matrix, reject-sampled rather than enumerated), so exhaustive search
// must reject it with a configuration error rather than loop forever.
func TestNetExhaustiveRejectsUnboundedValueSpace(t *testing.T) {
	method, err := construct.NewExplicit(2, 2, false)
	if err != nil {
		t.Fatalf("NewExplicit: %v", err)
	}
	w, _ := weights.NewProduct([]float64{1})
	fig, _ := merit.NewTValueFigure(w, 2)
	obs := NewMinimumObserver()
	if _, _, err := RunNetSearch(Exhaustive, method, 1, fig, obs, RandomOpts{}); err == nil {
		t.Fatal("expected exhaustive search to reject Explicit's unbounded value space")
	}
}

func TestNetRandomIsDeterministicForFixedSeed(t *testing.T) {
	method, err := construct.NewExplicit(3, 3, false)
	if err != nil {
		t.Fatalf("NewExplicit: %v", err)
	}
	w, err := weights.NewProduct([]float64{1, 1})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}

	run := func() (float64, error) {
		fig, err := merit.NewTValueFigure(w, 2)
		if err != nil {
			return 0, err
		}
		obs := NewMinimumObserver()
		_, best, err := RunNetSearch(Random, method, 2, fig, obs, RandomOpts{NBTries: 20, Seed: 42})
		return best, err
	}

	m1, err := run()
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	m2, err := run()
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if m1 != m2 {
		t.Fatalf("random search with fixed seed gave %g then %g, want a deterministic winner (S4)", m1, m2)
	}
}

func TestNetCBCGrowsOneCoordinateAtATime(t *testing.T) {
	method, err := construct.NewPolynomial(3, []int{0, 1, 3}) // x^3+x+1
	if err != nil {
		t.Fatalf("NewPolynomial: %v", err)
	}
	w, err := weights.NewProduct([]float64{1, 1, 1})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	fig, err := merit.NewTValueFigure(w, 2)
	if err != nil {
		t.Fatalf("NewTValueFigure: %v", err)
	}
	obs := NewMinimumObserver()
	values, best, err := RunNetSearch(CBC, method, 3, fig, obs, RandomOpts{})
	if err != nil {
		t.Fatalf("RunNetSearch: %v", err)
	}
	if len(values) != 3 {
		t.Fatalf("len(values) = %d, want 3", len(values))
	}
	if math.IsNaN(best) || math.IsInf(best, 0) {
		t.Fatalf("best = %g, want finite", best)
	}
}

func TestNetSearchRejectsFastCBCForTValueFigure(t *testing.T) {
	method, err := construct.NewPolynomial(2, []int{0, 1, 2})
	if err != nil {
		t.Fatalf("NewPolynomial: %v", err)
	}
	w, _ := weights.NewProduct([]float64{1})
	fig, _ := merit.NewTValueFigure(w, 2)
	obs := NewMinimumObserver()
	if _, _, err := RunNetSearch(FastCBC, method, 1, fig, obs, RandomOpts{}); err == nil {
		t.Fatal("expected FastCBC to be rejected for a non-coordinate-uniform figure")
	}
}

// TestAbortEverywhereYieldsNoCandidate is scenario S6: with an artificial
// best merit of 0 (unreachable, since t-values are non-negative and any
// real improvement requires a strictly smaller merit), every candidate
// aborts at the first coordinate and the driver reports NoCandidate.
func TestAbortEverywhereYieldsNoCandidate(t *testing.T) {
	method, err := construct.NewPolynomial(3, []int{0, 1, 3})
	if err != nil {
		t.Fatalf("NewPolynomial: %v", err)
	}
	w, err := weights.NewProduct([]float64{1, 1})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	fig, err := merit.NewTValueFigure(w, 2)
	if err != nil {
		t.Fatalf("NewTValueFigure: %v", err)
	}
	obs := &MinimumObserver{bestMerit: 0} // unreachable: no nonnegative t-value merit beats 0
	if _, _, err := RunNetSearch(Exhaustive, method, 2, fig, obs, RandomOpts{}); err == nil {
		t.Fatal("expected RunNetSearch to report no candidate when bestMerit is unreachable")
	}
}
