package filter

import "testing"

func TestIdentitySelectorSumCombiner(t *testing.T) {
	fl, err := NewFilterList(IdentitySelector, SumCombiner)
	if err != nil {
		t.Fatalf("NewFilterList: %v", err)
	}
	got, err := fl.Apply([]int{2, 1, 3})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != 6 {
		t.Fatalf("got %g, want 6", got)
	}
}

func TestCumulativeMaxSelectorMaxCombiner(t *testing.T) {
	fl, err := NewFilterList(CumulativeMaxSelector, MaxCombiner)
	if err != nil {
		t.Fatalf("NewFilterList: %v", err)
	}
	// running max at each level of [2,1,3,0] is [2,2,3,3]; the combiner's
	// max over that is 3.
	got, err := fl.Apply([]int{2, 1, 3, 0})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != 3 {
		t.Fatalf("got %g, want 3", got)
	}
}

func TestWeightedSumCombiner(t *testing.T) {
	fl, err := NewFilterList(IdentitySelector, WeightedSumCombiner([]float64{1, 0.5, 2}))
	if err != nil {
		t.Fatalf("NewFilterList: %v", err)
	}
	got, err := fl.Apply([]int{4, 2, 1})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := 4*1 + 2*0.5 + 1*2.0
	if got != want {
		t.Fatalf("got %g, want %g", got, want)
	}
}

func TestNewFilterListRejectsNilHooks(t *testing.T) {
	if _, err := NewFilterList(nil, SumCombiner); err == nil {
		t.Fatal("expected NewFilterList to reject a nil selector")
	}
	if _, err := NewFilterList(IdentitySelector, nil); err == nil {
		t.Fatal("expected NewFilterList to reject a nil combiner")
	}
}

func TestApplyRejectsEmptySequence(t *testing.T) {
	fl, err := NewFilterList(IdentitySelector, SumCombiner)
	if err != nil {
		t.Fatalf("NewFilterList: %v", err)
	}
	if _, err := fl.Apply(nil); err == nil {
		t.Fatal("expected Apply to reject an empty t-sequence")
	}
}
