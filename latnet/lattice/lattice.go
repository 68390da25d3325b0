// Package lattice implements the rank-1 integration lattice constructions
// (Ordinary, Polynomial), named alongside the digital net constructions.
// A rank-1 lattice is specified by a size n and, per dimension, a
// generating value; its i-th point in coordinate j is a single scalar in
// [0,1) rather than a row of a bit matrix, so this package mirrors
// latnet/construct's Method/ValueSpace shape without sharing its types.
package lattice

import (
	"fmt"
	"math/big"

	"latnetsearch/latnet"
	"latnetsearch/latnet/rng"
)

// Value is an opaque per-coordinate generating value (an integer generator
// for Ordinary, a GF(2)[x] polynomial for Polynomial).
type Value interface{}

// ValueSpace enumerates or samples the candidate values for one coordinate.
type ValueSpace interface {
	Count() int
	At(i int) Value
}

// Method is the capability set both lattice constructions implement,
// mirroring latnet/construct.Method's checkValue/valueSpaceForCoord/
// sampleRandom/format contract but replacing MakeMatrix with Coordinate,
// since a lattice point is a scalar, not a matrix row.
type Method interface {
	// CheckValue validates a value against this construction's constraints.
	CheckValue(v Value) error
	// N returns the lattice size (number of points), as a big.Int since
	// moduli for the polynomial lattice can exceed a machine word.
	N() *big.Int
	// ValueSpaceForCoord returns the candidate value space for coordinate
	// coord (0-indexed).
	ValueSpaceForCoord(coord int) (ValueSpace, error)
	// SampleRandom draws one uniformly random valid value for coordinate
	// coord using r.
	SampleRandom(r *rng.RNG, coord int) (Value, error)
	// Coordinate returns x_{i,j} in [0,1) for point index i (0 <= i < N())
	// and generating value v at some coordinate.
	Coordinate(v Value, i *big.Int) (float64, error)
	// Format renders v for the CLI's human/machine report.
	Format(v Value) string
}

type sliceValueSpace struct {
	values []Value
}

func (s sliceValueSpace) Count() int     { return len(s.values) }
func (s sliceValueSpace) At(i int) Value { return s.values[i] }

func checkPointIndex(i, n *big.Int) error {
	if i.Sign() < 0 || i.Cmp(n) >= 0 {
		return fmt.Errorf("lattice: point index %s out of [0,%s): %w", i, n, latnet.ErrOutOfBounds)
	}
	return nil
}
