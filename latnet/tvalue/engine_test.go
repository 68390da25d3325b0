package tvalue

import (
	"testing"

	"latnetsearch/internal/gf2"
)

// identity returns the n x n identity matrix as a *gf2.Matrix.
func identityMatrix(n int) *gf2.Matrix {
	return gf2.Identity(n)
}

// allOnes returns an r x c matrix of all ones.
func allOnes(r, c int) *gf2.Matrix {
	m := gf2.NewMatrix(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, true)
		}
	}
	return m
}

// S1: R=C=3, s=2, M1 = I3, M2 = J (all ones). Expected t = 1.
func TestSingleScenarioS1(t *testing.T) {
	m1 := identityMatrix(3)
	m2 := allOnes(3, 3)
	got, err := Single([]*gf2.Matrix{m1, m2})
	if err != nil {
		t.Fatalf("Single: %v", err)
	}
	if got != 1 {
		t.Fatalf("t = %d, want 1", got)
	}
}

// A single generating matrix (s=1) always has t=0, regardless of content:
// every 1-dimensional projection onto the first m coordinates is trivially
// equidistributed.
func TestSingleDimensionAlwaysZero(t *testing.T) {
	m := allOnes(4, 4)
	got, err := Single([]*gf2.Matrix{m})
	if err != nil {
		t.Fatalf("Single: %v", err)
	}
	if got != 0 {
		t.Fatalf("t = %d, want 0", got)
	}
}

// cyclicShift returns the n x n matrix whose row i has its single 1 at
// column (i+shift) mod n.
func cyclicShift(n, shift int) *gf2.Matrix {
	m := gf2.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, (i+shift)%n, true)
	}
	return m
}

// Three pairwise-independent cyclic shifts of the 3x3 identity give the
// best possible net at C=s=3: the only composition's seed rows are already
// linearly independent, so t should be 0.
func TestSingleIndependentShiftsAreOptimal(t *testing.T) {
	mats := []*gf2.Matrix{cyclicShift(3, 0), cyclicShift(3, 1), cyclicShift(3, 2)}
	got, err := Single(mats)
	if err != nil {
		t.Fatalf("Single: %v", err)
	}
	if got != 0 {
		t.Fatalf("t = %d, want 0", got)
	}
}

func TestSingleRejectsShapeMismatch(t *testing.T) {
	m1 := identityMatrix(3)
	m2 := identityMatrix(4)
	if _, err := Single([]*gf2.Matrix{m1, m2}); err == nil {
		t.Fatalf("expected shape mismatch error, got nil")
	}
}

func TestSingleRejectsEmpty(t *testing.T) {
	if _, err := Single(nil); err == nil {
		t.Fatalf("expected configuration error, got nil")
	}
}

// The t-sequence of an embedded net must be monotone in the sense that
// t(ell+1) <= t(ell)+1, and every entry is non-negative.
func TestSequenceMonotonicity(t *testing.T) {
	mats := []*gf2.Matrix{identityMatrix(6), allOnes(6, 6)}
	seq, err := Sequence(mats, 2, []int{0, 0, 0, 0})
	if err != nil {
		t.Fatalf("Sequence: %v", err)
	}
	if len(seq) != 4 {
		t.Fatalf("len(seq) = %d, want 4", len(seq))
	}
	for i, v := range seq {
		if v < 0 {
			t.Fatalf("seq[%d] = %d, want >= 0", i, v)
		}
	}
	for i := 1; i < len(seq); i++ {
		if seq[i] > seq[i-1]+1 {
			t.Fatalf("seq[%d]=%d exceeds seq[%d]=%d by more than 1", i, seq[i], i-1, seq[i-1])
		}
	}
}

// For s=1, every level's t-value is 0.
func TestSequenceSingleDimensionAllZero(t *testing.T) {
	mats := []*gf2.Matrix{allOnes(5, 5)}
	seq, err := Sequence(mats, 1, []int{0, 0, 0, 0})
	if err != nil {
		t.Fatalf("Sequence: %v", err)
	}
	for i, v := range seq {
		if v != 0 {
			t.Fatalf("seq[%d] = %d, want 0", i, v)
		}
	}
}

func TestSequenceRejectsBadBoundLength(t *testing.T) {
	mats := []*gf2.Matrix{identityMatrix(4), allOnes(4, 4)}
	if _, err := Sequence(mats, 1, []int{0}); err == nil {
		t.Fatalf("expected shape mismatch error, got nil")
	}
}
