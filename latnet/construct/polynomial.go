package construct

import (
	"fmt"

	"latnetsearch/internal/gf2"
	"latnetsearch/latnet"
	"latnetsearch/latnet/rng"
)

// PolynomialValue is the generating value for one coordinate of a
// Polynomial net: a polynomial over GF(2), represented by the bit
// positions of its nonzero terms (coefficient of x^Bits[i] is 1).
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

// Polynomial implements Method for the Polynomial (GF(2)[x] lattice-style)
// net construction: the size parameter is a modulus polynomial P(x) with
// deg(P) = C, and the matrix entries are the first C bits of the expansion
// of value/P as a formal Laurent series in x^-1. See DESIGN.md for the
// exact recurrence used to compute that expansion.
type Polynomial struct {
	r, c int
	mod  *gf2.Poly
}

// NewPolynomial returns a Polynomial construction whose modulus has degree
// c (the output bit count) and whose matrices have r rows.
func NewPolynomial(r int, modBits []int) (*Polynomial, error) {
	mod := gf2.NewPoly()
	for _, b := range modBits {
		mod.SetBit(b)
	}
	c := mod.Degree()
	if c <= 0 {
		return nil, fmt.Errorf("construct: polynomial modulus must have positive degree, got %d: %w", c, latnet.ErrConfiguration)
	}
	if r <= 0 {
		return nil, fmt.Errorf("construct: polynomial requires positive row count, got %d: %w", r, latnet.ErrConfiguration)
	}
	return &Polynomial{r: r, c: c, mod: mod}, nil
}

func (p *Polynomial) NRows() int { return p.r }
func (p *Polynomial) NCols() int { return p.c }

// CheckValue requires deg(value) < deg(modulus) and value != 0.
func (p *Polynomial) CheckValue(v Value) error {
	pv, ok := v.(PolynomialValue)
	if !ok {
		return fmt.Errorf("construct: polynomial value has wrong type %T: %w", v, latnet.ErrConfiguration)
	}
	poly := pv.toPoly()
	if poly.Degree() < 0 {
		return fmt.Errorf("construct: polynomial value must be nonzero: %w", latnet.ErrConfiguration)
	}
	if poly.Degree() >= p.mod.Degree() {
		return fmt.Errorf("construct: polynomial value degree %d must be < modulus degree %d: %w", poly.Degree(), p.mod.Degree(), latnet.ErrConfiguration)
	}
	return nil
}

// MakeMatrix builds the (R, C) generating matrix: row i is a[i], a[i+1],
// ..., a[i+C-1], a sliding window over the single LFSR sequence derived
// from value mod P.
func (p *Polynomial) MakeMatrix(v Value) (*gf2.Matrix, error) {
	if err := p.CheckValue(v); err != nil {
		return nil, err
	}
	pv := v.(PolynomialValue)
	remainder := pv.toPoly().Mod(p.mod)
	a := gf2.ExpandLaurent(remainder, p.mod, p.r+p.c-1)

	out := gf2.NewMatrix(p.r, p.c)
	for row := 0; row < p.r; row++ {
		for col := 0; col < p.c; col++ {
			out.Set(row, col, a[row+col])
		}
	}
	return out, nil
}

// ValueSpaceForCoord enumerates every nonzero polynomial of degree <
// deg(modulus), which is small for the modest moduli this construction
// targets.
func (p *Polynomial) ValueSpaceForCoord(coord int) (ValueSpace, error) {
	_ = coord
	var values []Value
	for enc := 1; enc < 1<<uint(p.mod.Degree()); enc++ {
		var bits []int
		for b := 0; b < p.mod.Degree(); b++ {
			if enc&(1<<uint(b)) != 0 {
				bits = append(bits, b)
			}
		}
		values = append(values, PolynomialValue{Bits: bits})
	}
	return sliceValueSpace{values: values}, nil
}

// SampleRandom draws a uniformly random nonzero polynomial of degree <
// deg(modulus).
func (p *Polynomial) SampleRandom(r *rng.RNG, coord int) (Value, error) {
	_ = coord
	deg := p.mod.Degree()
	for {
		var bits []int
		for b := 0; b < deg; b++ {
			if r.Bool() {
				bits = append(bits, b)
			}
		}
		if len(bits) > 0 {
			return PolynomialValue{Bits: bits}, nil
		}
	}
}

// Format renders the value's nonzero exponents.
func (p *Polynomial) Format(v Value) string {
	pv, ok := v.(PolynomialValue)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("poly%v", pv.Bits)
}
