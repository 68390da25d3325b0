package construct

import "testing"

// TestNetExtendDimensionSharesPrefixData checks the shared-ownership
// requirement: extending a net must not rebuild the matrices of
// coordinates that were already fixed.
func TestNetExtendDimensionSharesPrefixData(t *testing.T) {
	method, err := NewPolynomial(3, []int{0, 1, 3}) // x^3+x+1
	if err != nil {
		t.Fatalf("NewPolynomial: %v", err)
	}
	vs, err := method.ValueSpaceForCoord(0)
	if err != nil {
		t.Fatalf("ValueSpaceForCoord: %v", err)
	}
	if vs.Count() < 2 {
		t.Fatalf("need at least 2 candidate values at coordinate 0 to extend twice, got %d", vs.Count())
	}

	base := NewNet(method)
	if base.Dimension() != 0 {
		t.Fatalf("fresh net has Dimension() = %d, want 0", base.Dimension())
	}

	prefix, err := base.ExtendDimension(vs.At(0))
	if err != nil {
		t.Fatalf("ExtendDimension: %v", err)
	}
	if prefix.Dimension() != 1 {
		t.Fatalf("Dimension() = %d, want 1", prefix.Dimension())
	}
	prefixMatrix, err := prefix.Matrix(0)
	if err != nil {
		t.Fatalf("Matrix(0): %v", err)
	}

	extA, err := prefix.ExtendDimension(vs.At(0))
	if err != nil {
		t.Fatalf("ExtendDimension A: %v", err)
	}
	extB, err := prefix.ExtendDimension(vs.At(1))
	if err != nil {
		t.Fatalf("ExtendDimension B: %v", err)
	}

	matA, err := extA.Matrix(0)
	if err != nil {
		t.Fatalf("extA.Matrix(0): %v", err)
	}
	matB, err := extB.Matrix(0)
	if err != nil {
		t.Fatalf("extB.Matrix(0): %v", err)
	}
	if matA != prefixMatrix || matB != prefixMatrix {
		t.Fatal("extending a net rebuilt coordinate 0's matrix instead of sharing the prefix's pointer")
	}

	if prefix.Dimension() != 1 {
		t.Fatalf("extending twice mutated the shared prefix: Dimension() = %d, want 1", prefix.Dimension())
	}
}

func TestNetExtendDimensionRejectsInvalidValue(t *testing.T) {
	method, err := NewPolynomial(3, []int{0, 1, 3})
	if err != nil {
		t.Fatalf("NewPolynomial: %v", err)
	}
	net := NewNet(method)
	if _, err := net.ExtendDimension(PolynomialValue{Bits: nil}); err == nil {
		t.Fatal("expected ExtendDimension to reject the zero polynomial")
	}
}
