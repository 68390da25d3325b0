package search

import (
	"math/cmplx"
	"testing"
)

func approxComplex(a, b complex128) bool {
	return cmplx.Abs(a-b) < 1e-6
}

// directCorrelation is circularCorrelation's O(n^2) textbook definition,
// used as the ground truth the FFT/Bluestein path is checked against.
func directCorrelation(p, w []complex128) []complex128 {
	n := len(p)
	out := make([]complex128, n)
	for b := 0; b < n; b++ {
		var sum complex128
		for a := 0; a < n; a++ {
			sum += p[a] * w[(a+b)%n]
		}
		out[b] = sum
	}
	return out
}

func TestCircularCorrelationMatchesDirectSumPowerOfTwoLength(t *testing.T) {
	p := []complex128{1, 2, 3, 4}
	w := []complex128{5, 6, 7, 8}
	got := circularCorrelation(p, w)
	want := directCorrelation(p, w)
	for i := range want {
		if !approxComplex(got[i], want[i]) {
			t.Fatalf("corr[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCircularCorrelationMatchesDirectSumPrimeLength(t *testing.T) {
	p := []complex128{1, 0, 2, 1, 3, 2, 1}
	w := []complex128{2, 1, 0, 1, 2, 1, 0}
	got := circularCorrelation(p, w)
	want := directCorrelation(p, w)
	for i := range want {
		if !approxComplex(got[i], want[i]) {
			t.Fatalf("corr[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDFTRoundTripNonPowerOfTwoLength(t *testing.T) {
	x := []complex128{1, 2, 3, 4, 5}
	got := idft(dft(x))
	for i, v := range x {
		if !approxComplex(got[i], v) {
			t.Fatalf("round-trip[%d] = %v, want %v", i, got[i], v)
		}
	}
}

func TestPrimitiveRootModGeneratesFullGroup(t *testing.T) {
	for _, n := range []int64{5, 7, 11, 13} {
		g, err := primitiveRootMod(n)
		if err != nil {
			t.Fatalf("primitiveRootMod(%d): %v", n, err)
		}
		seen := make(map[int64]bool)
		cur := int64(1)
		for i := int64(0); i < n-1; i++ {
			seen[cur] = true
			cur = (cur * g) % n
		}
		if len(seen) != int(n-1) {
			t.Fatalf("primitiveRootMod(%d) = %d generated only %d distinct residues, want %d", n, g, len(seen), n-1)
		}
	}
}

func TestIsPrimeInt64(t *testing.T) {
	primes := map[int64]bool{2: true, 3: true, 5: true, 7: true, 11: true, 4: false, 8: false, 9: false, 1: false}
	for n, want := range primes {
		if got := isPrimeInt64(n); got != want {
			t.Fatalf("isPrimeInt64(%d) = %v, want %v", n, got, want)
		}
	}
}
