package gf2

import "math/bits"

// Poly is a polynomial over GF(2), coefficients packed into machine words:
// bit i of the packed words is the coefficient of x^i. This reuses the same
// word-packing idiom as Matrix, just applied to a single unbounded row
// instead of a fixed-width one.
type Poly struct {
	words []uint64
}

// NewPoly returns the zero polynomial.
func NewPoly() *Poly { return &Poly{} }

// PolyFromBits builds a polynomial from bits, coefficient of x^i = bits[i].
func PolyFromBits(bitsIn []bool) *Poly {
	p := NewPoly()
	for i, b := range bitsIn {
		if b {
			p.SetBit(i)
		}
	}
	return p
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p *Poly) Degree() int {
	for w := len(p.words) - 1; w >= 0; w-- {
		if p.words[w] != 0 {
			return w*wordBits + (63 - bits.LeadingZeros64(p.words[w]))
		}
	}
	return -1
}

// Bit returns the coefficient of x^i.
func (p *Poly) Bit(i int) bool {
	w := i / wordBits
	if w >= len(p.words) {
		return false
	}
	return p.words[w]&(uint64(1)<<uint(i%wordBits)) != 0
}

// SetBit sets the coefficient of x^i to 1.
func (p *Poly) SetBit(i int) {
	w := i / wordBits
	for len(p.words) <= w {
		p.words = append(p.words, 0)
	}
	p.words[w] |= uint64(1) << uint(i%wordBits)
}

// XORInto XORs q into p in place (p += q over GF(2)).
func (p *Poly) XORInto(q *Poly) {
	for len(p.words) < len(q.words) {
		p.words = append(p.words, 0)
	}
	for i, w := range q.words {
		p.words[i] ^= w
	}
}

// ShiftLeft returns a new polynomial representing p * x^n.
func (p *Poly) ShiftLeft(n int) *Poly {
	out := NewPoly()
	d := p.Degree()
	for i := 0; i <= d; i++ {
		if p.Bit(i) {
			out.SetBit(i + n)
		}
	}
	return out
}

// Mod reduces p modulo m (polynomial remainder, degree < deg(m)).
// m must be nonzero.
func (p *Poly) Mod(m *Poly) *Poly {
	md := m.Degree()
	r := p.Copy()
	for {
		rd := r.Degree()
		if rd < md {
			return r
		}
		shifted := m.ShiftLeft(rd - md)
		r.XORInto(shifted)
	}
}

// Mul returns p*q, the carryless (XOR-convolution) product over GF(2).
func (p *Poly) Mul(q *Poly) *Poly {
	out := NewPoly()
	pd := p.Degree()
	qd := q.Degree()
	if pd < 0 || qd < 0 {
		return out
	}
	for i := 0; i <= pd; i++ {
		if p.Bit(i) {
			out.XORInto(q.ShiftLeft(i))
		}
	}
	return out
}

// Copy returns a deep copy.
func (p *Poly) Copy() *Poly {
	out := &Poly{words: append([]uint64(nil), p.words...)}
	return out
}

// ExpandLaurent computes n terms a_1..a_n of the formal Laurent series
// expansion of remainder/modulus in x^-1 (deg(remainder) < deg(modulus)
// required). a_1..a_C (C = deg(modulus)) come from matching the
// coefficients of x^(C-1)..x^0 in modulus·A = remainder: a_l is remainder's
// x^(C-l) coefficient XOR the feedback of modulus's coefficients
// x^(C-l+1)..x^(C-1) on a_1..a_(l-1). Subsequent terms follow the linear
// recurrence driven by modulus's low-order coefficients — an LFSR over
// GF(2). This is the shared
// primitive behind both the Polynomial digital net construction and the
// Polynomial rank-1 lattice construction.
func ExpandLaurent(remainder, modulus *Poly, n int) []bool {
	c := modulus.Degree()
	a := make([]bool, n)
	for l := 1; l <= c && l <= n; l++ {
		bit := remainder.Bit(c - l)
		for i := c - l + 1; i < c; i++ {
			if modulus.Bit(i) && a[l-c+i-1] {
				bit = !bit
			}
		}
		a[l-1] = bit
	}
	for l := c + 1; l <= n; l++ {
		var bit bool
		for i := 0; i < c; i++ {
			if modulus.Bit(i) && a[l-c+i-1] {
				bit = !bit
			}
		}
		a[l-1] = bit
	}
	return a
}

// Bits returns the first n coefficients (x^0 .. x^(n-1)) as a []bool.
func (p *Poly) Bits(n int) []bool {
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = p.Bit(i)
	}
	return out
}
