package weights

import "testing"

func TestProductGamma(t *testing.T) {
	p, err := NewProduct([]float64{1, 0.5, 0.25})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	if got := p.Gamma([]int{0, 2}); got != 0.25 {
		t.Fatalf("Gamma({0,2}) = %g, want 0.25", got)
	}
	if got := p.Gamma(nil); got != 1 {
		t.Fatalf("Gamma(empty) = %g, want 1", got)
	}
	if got := p.Gamma([]int{5}); got != 0 {
		t.Fatalf("Gamma(out of range) = %g, want 0", got)
	}
}

func TestProductRejectsNegative(t *testing.T) {
	if _, err := NewProduct([]float64{1, -1}); err == nil {
		t.Fatal("expected NewProduct to reject a negative weight")
	}
}

func TestProductMaxCardinality(t *testing.T) {
	p, err := NewProduct([]float64{1, 0, 0.5})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	if got := p.MaxCardinality(); got != 3 {
		t.Fatalf("MaxCardinality() = %d, want 3", got)
	}
}

func TestOrderDependentGamma(t *testing.T) {
	o, err := NewOrderDependent([]float64{0, 1, 0.5})
	if err != nil {
		t.Fatalf("NewOrderDependent: %v", err)
	}
	if got := o.Gamma([]int{0, 1}); got != 0.5 {
		t.Fatalf("Gamma(card=2) = %g, want 0.5", got)
	}
	if got := o.Gamma([]int{0, 1, 2}); got != 0 {
		t.Fatalf("Gamma(card=3, out of table) = %g, want 0", got)
	}
}

func TestOrderDependentMaxCardinalityWithSingleNonzeroOrder(t *testing.T) {
	o, err := NewOrderDependent([]float64{0, 0, 0, 1})
	if err != nil {
		t.Fatalf("NewOrderDependent: %v", err)
	}
	if got := o.MaxCardinality(); got != 3 {
		t.Fatalf("MaxCardinality() = %d, want 3", got)
	}
}

func TestPODCombinesOrderAndProduct(t *testing.T) {
	pod, err := NewPOD([]float64{0, 1, 0.5}, []float64{1, 2})
	if err != nil {
		t.Fatalf("NewPOD: %v", err)
	}
	got := pod.Gamma([]int{0, 1})
	want := 0.5 * (1 * 2)
	if got != want {
		t.Fatalf("Gamma = %g, want %g", got, want)
	}
}

func TestProjectionDependentCanonicalizesKeys(t *testing.T) {
	entries := map[string]float64{
		Key([]int{2, 0}): 0.75,
	}
	pd, err := NewProjectionDependent(entries)
	if err != nil {
		t.Fatalf("NewProjectionDependent: %v", err)
	}
	if got := pd.Gamma([]int{0, 2}); got != 0.75 {
		t.Fatalf("Gamma({0,2}) = %g, want 0.75 (order-independent lookup)", got)
	}
	if got := pd.Gamma([]int{2, 0}); got != 0.75 {
		t.Fatalf("Gamma({2,0}) = %g, want 0.75", got)
	}
	if got := pd.MaxCardinality(); got != 2 {
		t.Fatalf("MaxCardinality() = %d, want 2", got)
	}
}

func TestProjectionDependentRejectsNegative(t *testing.T) {
	entries := map[string]float64{Key([]int{0}): -1}
	if _, err := NewProjectionDependent(entries); err == nil {
		t.Fatal("expected NewProjectionDependent to reject a negative weight")
	}
}

func TestCombinedSumsParts(t *testing.T) {
	p1, _ := NewProduct([]float64{1})
	p2, _ := NewProduct([]float64{2})
	c, err := NewCombined([]Weights{p1, p2})
	if err != nil {
		t.Fatalf("NewCombined: %v", err)
	}
	if got := c.Gamma([]int{0}); got != 3 {
		t.Fatalf("Gamma({0}) = %g, want 3", got)
	}
}

func TestCombinedRejectsEmpty(t *testing.T) {
	if _, err := NewCombined(nil); err == nil {
		t.Fatal("expected NewCombined to reject an empty part list")
	}
}
