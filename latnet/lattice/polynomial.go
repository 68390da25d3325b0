package lattice

import (
	"fmt"
	"math/big"

	"latnetsearch/internal/gf2"
	"latnetsearch/latnet"
	"latnetsearch/latnet/rng"
)

// PolynomialValue is the generating value for one coordinate of a
// Polynomial rank-1 lattice: a polynomial h(x) over GF(2), deg(h) < deg(P).
type PolynomialValue struct {
	Bits []int
}

func (pv PolynomialValue) toPoly() *gf2.Poly {
	p := gf2.NewPoly()
	for _, b := range pv.Bits {
		p.SetBit(b)
	}
	return p
}

// Polynomial implements Method for the Niederreiter-Xing-style polynomial
// lattice rule: the size parameter is a modulus polynomial P(x) of degree
// m, n = 2^m points. Point i's coordinate under generator h is obtained by
// expanding (indexPoly(i) * h mod P) / P as a formal Laurent series in x^-1
// and reading the result back as a base-2 fraction — the same Laurent
// expansion primitive used by the Polynomial digital net construction,
// applied to a product instead of a bare remainder.
type Polynomial struct {
	mod *gf2.Poly
	m   int
	n   *big.Int
}

// NewPolynomial returns a Polynomial lattice construction whose modulus is
// the polynomial encoded by modBits (bit positions of its nonzero terms).
func NewPolynomial(modBits []int) (*Polynomial, error) {
	mod := gf2.NewPoly()
	for _, b := range modBits {
		mod.SetBit(b)
	}
	m := mod.Degree()
	if m <= 0 {
		return nil, fmt.Errorf("lattice: polynomial modulus must have positive degree, got %d: %w", m, latnet.ErrConfiguration)
	}
	n := new(big.Int).Lsh(big.NewInt(1), uint(m))
	return &Polynomial{mod: mod, m: m, n: n}, nil
}

func (p *Polynomial) N() *big.Int { return new(big.Int).Set(p.n) }

// CheckValue requires deg(value) < deg(modulus) (the zero polynomial is
// allowed, unlike the digital net Polynomial construction, since a
// generator of 0 simply places every point at coordinate 0 — a degenerate
// but not invalid rank-1 lattice component).
func (p *Polynomial) CheckValue(v Value) error {
	pv, ok := v.(PolynomialValue)
	if !ok {
		return fmt.Errorf("lattice: polynomial value has wrong type %T: %w", v, latnet.ErrConfiguration)
	}
	poly := pv.toPoly()
	if poly.Degree() >= p.m {
		return fmt.Errorf("lattice: polynomial value degree %d must be < modulus degree %d: %w", poly.Degree(), p.m, latnet.ErrConfiguration)
	}
	return nil
}

// indexToPoly converts a point index 0 <= i < n=2^m into its polynomial
// representation indexPoly(i): bit b of i (0 = least significant) becomes
// the coefficient of x^b.
func indexToPoly(i *big.Int, m int) *gf2.Poly {
	p := gf2.NewPoly()
	for b := 0; b < m; b++ {
		if i.Bit(b) == 1 {
			p.SetBit(b)
		}
	}
	return p
}

// Coordinate computes x_{i,j} = sum_{l=1..m} a_l * 2^-l, where a is the
// Laurent expansion of (indexPoly(i) * h mod P) / P.
func (p *Polynomial) Coordinate(v Value, i *big.Int) (float64, error) {
	if err := p.CheckValue(v); err != nil {
		return 0, err
	}
	if err := checkPointIndex(i, p.n); err != nil {
		return 0, err
	}
	pv := v.(PolynomialValue)
	h := pv.toPoly()
	idxPoly := indexToPoly(i, p.m)
	remainder := idxPoly.Mul(h).Mod(p.mod)
	a := gf2.ExpandLaurent(remainder, p.mod, p.m)

	x := 0.0
	scale := 0.5
	for _, bit := range a {
		if bit {
			x += scale
		}
		scale /= 2
	}
	return x, nil
}

// ValueSpaceForCoord enumerates every polynomial of degree < deg(modulus),
// including the zero polynomial (unlike the digital net construction,
// which excludes it because a zero generating value there collapses a
// whole matrix row-space, not just one lattice coordinate).
func (p *Polynomial) ValueSpaceForCoord(coord int) (ValueSpace, error) {
	_ = coord
	values := make([]Value, 0, 1<<uint(p.m))
	for enc := 0; enc < 1<<uint(p.m); enc++ {
		var bits []int
		for b := 0; b < p.m; b++ {
			if enc&(1<<uint(b)) != 0 {
				bits = append(bits, b)
			}
		}
		values = append(values, PolynomialValue{Bits: bits})
	}
	return sliceValueSpace{values: values}, nil
}

// SampleRandom draws a uniformly random polynomial of degree < deg(modulus).
func (p *Polynomial) SampleRandom(r *rng.RNG, coord int) (Value, error) {
	_ = coord
	var bits []int
	for b := 0; b < p.m; b++ {
		if r.Bool() {
			bits = append(bits, b)
		}
	}
	return PolynomialValue{Bits: bits}, nil
}

// Format renders the generator's nonzero exponents.
func (p *Polynomial) Format(v Value) string {
	pv, ok := v.(PolynomialValue)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("poly%v", pv.Bits)
}
