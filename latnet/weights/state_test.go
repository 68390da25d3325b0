package weights

import "testing"

func closeEnough(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

func TestProductStateMatchesDirectGamma(t *testing.T) {
	p, err := NewProduct([]float64{0.5, 0.25})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	st, err := NewWeightState(p, 2)
	if err != nil {
		t.Fatalf("NewWeightState: %v", err)
	}
	st.Update(0, 2.0)
	st.Update(1, 3.0)
	got := st.Query()
	// expand (1+0.5*2)(1+0.25*3) - 1 = (2)(1.75) - 1 = 2.5
	want := (1+0.5*2.0)*(1+0.25*3.0) - 1
	if !closeEnough(got, want) {
		t.Fatalf("Query() = %g, want %g", got, want)
	}
}

func TestOrderDependentStateMatchesBruteForce(t *testing.T) {
	o, err := NewOrderDependent([]float64{0, 1, 2})
	if err != nil {
		t.Fatalf("NewOrderDependent: %v", err)
	}
	st, err := NewWeightState(o, 3)
	if err != nil {
		t.Fatalf("NewWeightState: %v", err)
	}
	rows := []float64{2.0, 3.0, 5.0}
	for i, r := range rows {
		st.Update(i, r)
	}
	got := st.Query()
	// order 1: Γ_1 * sum(rows) = 1*(2+3+5) = 10
	// order 2: Γ_2 * sum of pairwise products = 2*(2*3+2*5+3*5) = 2*31 = 62
	want := 10.0 + 62.0
	if !closeEnough(got, want) {
		t.Fatalf("Query() = %g, want %g", got, want)
	}
}

func TestPODStateFoldsProductGammaIntoOrderDP(t *testing.T) {
	pod, err := NewPOD([]float64{0, 1}, []float64{2, 3})
	if err != nil {
		t.Fatalf("NewPOD: %v", err)
	}
	st, err := NewWeightState(pod, 2)
	if err != nil {
		t.Fatalf("NewWeightState: %v", err)
	}
	st.Update(0, 5.0)
	st.Update(1, 7.0)
	got := st.Query()
	// only order 1 has nonzero Γ: Γ_1 * (γ_0*row_0 + γ_1*row_1) = 1*(2*5+3*7)=31
	want := 31.0
	if !closeEnough(got, want) {
		t.Fatalf("Query() = %g, want %g", got, want)
	}
}

func TestProjectionDependentStateContributesOnMaxCoordinate(t *testing.T) {
	entries := map[string]float64{Key([]int{0, 2}): 4.0}
	pd, err := NewProjectionDependent(entries)
	if err != nil {
		t.Fatalf("NewProjectionDependent: %v", err)
	}
	st, err := NewWeightState(pd, 3)
	if err != nil {
		t.Fatalf("NewWeightState: %v", err)
	}
	st.Update(0, 2.0)
	if got := st.Query(); got != 0 {
		t.Fatalf("Query() after coord 0 = %g, want 0 (projection {0,2} not yet complete)", got)
	}
	st.Update(1, 100.0) // coordinate not in the projection, should not contribute
	st.Update(2, 3.0)
	got := st.Query()
	want := 4.0 * 2.0 * 3.0
	if !closeEnough(got, want) {
		t.Fatalf("Query() = %g, want %g", got, want)
	}
}

func TestCombinedStateSumsParts(t *testing.T) {
	p1, _ := NewProduct([]float64{1})
	p2, _ := NewProduct([]float64{1})
	c, err := NewCombined([]Weights{p1, p2})
	if err != nil {
		t.Fatalf("NewCombined: %v", err)
	}
	st, err := NewWeightState(c, 1)
	if err != nil {
		t.Fatalf("NewWeightState: %v", err)
	}
	st.Update(0, 1.0)
	got := st.Query()
	want := 2 * ((1 + 1*1.0) - 1)
	if !closeEnough(got, want) {
		t.Fatalf("Query() = %g, want %g", got, want)
	}
}
