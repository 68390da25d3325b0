package lattice

import (
	"fmt"
	"math/big"

	"latnetsearch/latnet"
	"latnetsearch/latnet/rng"
)

// OrdinaryValue is the generating value for one coordinate of an Ordinary
// rank-1 lattice: a single integer generator z, 0 < z < n.
type OrdinaryValue struct {
	Z *big.Int
}

// Ordinary implements Method for the classical rank-1 lattice rule: point i
// in coordinate j is frac(i*z_j/n).
type Ordinary struct {
	n *big.Int
}

// NewOrdinary returns an Ordinary lattice construction of size n (n must be
// >= 2, per the definition of a nontrivial rank-1 lattice).
func NewOrdinary(n *big.Int) (*Ordinary, error) {
	if n.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("lattice: ordinary size n=%s must be >= 2: %w", n, latnet.ErrConfiguration)
	}
	return &Ordinary{n: new(big.Int).Set(n)}, nil
}

func (o *Ordinary) N() *big.Int { return new(big.Int).Set(o.n) }

// CheckValue requires 0 < z < n.
func (o *Ordinary) CheckValue(v Value) error {
	ov, ok := v.(OrdinaryValue)
	if !ok {
		return fmt.Errorf("lattice: ordinary value has wrong type %T: %w", v, latnet.ErrConfiguration)
	}
	if ov.Z == nil || ov.Z.Sign() <= 0 || ov.Z.Cmp(o.n) >= 0 {
		return fmt.Errorf("lattice: ordinary generator z=%v must satisfy 0 < z < n=%s: %w", ov.Z, o.n, latnet.ErrConfiguration)
	}
	return nil
}

// Coordinate returns frac(i*z/n) = ((i*z) mod n) / n.
func (o *Ordinary) Coordinate(v Value, i *big.Int) (float64, error) {
	if err := o.CheckValue(v); err != nil {
		return 0, err
	}
	if err := checkPointIndex(i, o.n); err != nil {
		return 0, err
	}
	ov := v.(OrdinaryValue)
	prod := new(big.Int).Mul(i, ov.Z)
	rem := new(big.Int).Mod(prod, o.n)

	num := new(big.Float).SetInt(rem)
	den := new(big.Float).SetInt(o.n)
	x, _ := new(big.Float).Quo(num, den).Float64()
	return x, nil
}

// ValueSpaceForCoord enumerates every generator 1 <= z < n. This is only
// practical for small n; SearchDriver's Exhaustive strategy is expected to
// be used with modest lattice sizes.
func (o *Ordinary) ValueSpaceForCoord(coord int) (ValueSpace, error) {
	_ = coord
	nInt := o.n.Int64()
	if !o.n.IsInt64() || nInt > 1<<20 {
		return nil, fmt.Errorf("lattice: ordinary size n=%s too large to enumerate exhaustively: %w", o.n, latnet.ErrConfiguration)
	}
	values := make([]Value, 0, nInt-1)
	for z := int64(1); z < nInt; z++ {
		values = append(values, OrdinaryValue{Z: big.NewInt(z)})
	}
	return sliceValueSpace{values: values}, nil
}

// SampleRandom draws a uniformly random generator 1 <= z < n.
func (o *Ordinary) SampleRandom(r *rng.RNG, coord int) (Value, error) {
	_ = coord
	if !o.n.IsInt64() {
		return nil, fmt.Errorf("lattice: ordinary size n=%s too large for the seeded RNG's int64 sampler: %w", o.n, latnet.ErrConfiguration)
	}
	nInt := o.n.Int64()
	if nInt < 2 {
		return nil, fmt.Errorf("lattice: ordinary size n=%d must be >= 2: %w", nInt, latnet.ErrConfiguration)
	}
	z := int64(r.Intn(int(nInt-1))) + 1
	return OrdinaryValue{Z: big.NewInt(z)}, nil
}

// Format renders the generator.
func (o *Ordinary) Format(v Value) string {
	ov, ok := v.(OrdinaryValue)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("z=%s", ov.Z)
}
