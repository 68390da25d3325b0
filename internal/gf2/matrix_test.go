package gf2

import "testing"

func TestMatrixGetSet(t *testing.T) {
	m := NewMatrix(3, 5)
	m.Set(1, 3, true)
	if !m.Get(1, 3) {
		t.Fatalf("expected bit (1,3) set")
	}
	if m.Get(0, 0) || m.Get(2, 4) {
		t.Fatalf("unexpected bit set in fresh matrix")
	}
}

func TestMatrixRowXOR(t *testing.T) {
	m := NewMatrix(2, 4)
	m.SetRow(0, []bool{true, false, true, false})
	m.SetRow(1, []bool{true, true, false, false})
	m.RowXOR(0, 1)
	want := []bool{false, true, true, false}
	for c, w := range want {
		if m.Get(0, c) != w {
			t.Fatalf("col %d: got %v want %v", c, m.Get(0, c), w)
		}
	}
}

func TestMatrixSubAndStack(t *testing.T) {
	m := Identity(4)
	sub, err := m.Sub(1, 1, 2, 2)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if !sub.Get(0, 0) || !sub.Get(1, 1) || sub.Get(0, 1) || sub.Get(1, 0) {
		t.Fatalf("sub-identity window wrong")
	}
	stacked, err := sub.StackBelow(sub)
	if err != nil {
		t.Fatalf("StackBelow: %v", err)
	}
	if stacked.NRows() != 4 || stacked.NCols() != 2 {
		t.Fatalf("stacked shape = (%d,%d), want (4,2)", stacked.NRows(), stacked.NCols())
	}
}

func TestMatrixStackShapeMismatch(t *testing.T) {
	a := NewMatrix(2, 3)
	b := NewMatrix(2, 4)
	if _, err := a.StackBelow(b); err == nil {
		t.Fatalf("expected shape mismatch error")
	}
}

func TestMatrixFirstSetBit(t *testing.T) {
	m := NewMatrix(1, 130)
	m.Set(0, 70, true)
	m.Set(0, 129, true)
	col, ok := m.FirstSetBit(0, 0)
	if !ok || col != 70 {
		t.Fatalf("got (%d,%v) want (70,true)", col, ok)
	}
	col, ok = m.FirstSetBit(0, 71)
	if !ok || col != 129 {
		t.Fatalf("got (%d,%v) want (129,true)", col, ok)
	}
	if _, ok := m.FirstSetBit(0, 130); ok {
		t.Fatalf("expected no bit past width")
	}
}
