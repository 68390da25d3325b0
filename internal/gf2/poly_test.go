package gf2

import "testing"

func TestPolyDegreeOfZero(t *testing.T) {
	p := NewPoly()
	if d := p.Degree(); d != -1 {
		t.Fatalf("Degree() of zero poly = %d, want -1", d)
	}
}

func TestPolySetBitAndDegree(t *testing.T) {
	p := NewPoly()
	p.SetBit(0)
	p.SetBit(3)
	if d := p.Degree(); d != 3 {
		t.Fatalf("Degree() = %d, want 3", d)
	}
	if !p.Bit(0) || !p.Bit(3) {
		t.Fatal("expected bits 0 and 3 to be set")
	}
	if p.Bit(1) || p.Bit(2) {
		t.Fatal("expected bits 1 and 2 to be clear")
	}
}

func TestPolyXORInto(t *testing.T) {
	a := PolyFromBits([]bool{true, true, false}) // 1 + x
	b := PolyFromBits([]bool{true, false, true}) // 1 + x^2
	a.XORInto(b)
	// (1+x) xor (1+x^2) = x + x^2
	if a.Bit(0) {
		t.Fatal("expected bit 0 to cancel")
	}
	if !a.Bit(1) || !a.Bit(2) {
		t.Fatal("expected bits 1 and 2 to be set after XOR")
	}
}

func TestPolyShiftLeft(t *testing.T) {
	p := PolyFromBits([]bool{true, true}) // 1 + x
	shifted := p.ShiftLeft(2)             // x^2 + x^3
	if shifted.Bit(0) || shifted.Bit(1) {
		t.Fatal("expected low bits clear after shift")
	}
	if !shifted.Bit(2) || !shifted.Bit(3) {
		t.Fatal("expected bits 2 and 3 set after shift")
	}
}

func TestPolyModReducesBelowModulusDegree(t *testing.T) {
	// modulus = x^3 + x + 1 (bits 0,1,3)
	mod := PolyFromBits([]bool{true, true, false, true})
	// value = x^4 (bit 4)
	value := PolyFromBits([]bool{false, false, false, false, true})
	r := value.Mod(mod)
	if r.Degree() >= mod.Degree() {
		t.Fatalf("Mod result has degree %d, want < %d", r.Degree(), mod.Degree())
	}
}

func TestPolyModOfAlreadyReducedIsIdentity(t *testing.T) {
	mod := PolyFromBits([]bool{true, true, false, true}) // x^3+x+1
	value := PolyFromBits([]bool{true, false})           // 1, degree 0 < 3
	r := value.Mod(mod)
	if r.Degree() != 0 || !r.Bit(0) {
		t.Fatalf("Mod of an already-reduced value changed it: degree=%d", r.Degree())
	}
}

func TestPolyCopyIsIndependent(t *testing.T) {
	p := PolyFromBits([]bool{true, false, true})
	cp := p.Copy()
	cp.SetBit(1)
	if p.Bit(1) {
		t.Fatal("mutating the copy mutated the original")
	}
}

func TestPolyBitsRoundTrip(t *testing.T) {
	in := []bool{true, false, true, true}
	p := PolyFromBits(in)
	out := p.Bits(4)
	for i := range in {
		if in[i] != out[i] {
			t.Fatalf("Bits()[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}
