// Package construct implements the NetConstruction traits (Sobol,
// Polynomial, Explicit) behind a shared capability set: check a generating value,
// report shape, build the per-coordinate generating matrix, enumerate or
// sample the value space, and format a value for reporting.
package construct

import (
	"fmt"

	"latnetsearch/internal/gf2"
	"latnetsearch/latnet"
	"latnetsearch/latnet/rng"
)

// Value is an opaque per-coordinate generating value; its concrete type
// depends on the construction (direction numbers for Sobol, a polynomial
// for Polynomial, a matrix for Explicit).
type Value interface{}

// ValueSpace enumerates or samples the candidate values for one coordinate.
type ValueSpace interface {
	// Count returns the number of candidates, or -1 if the space is too
	// large to enumerate (SearchDriver must use Random/CBC sampling then).
	Count() int
	// At returns the i-th candidate in enumeration order. Only valid when
	// Count() >= 0.
	At(i int) Value
}

// Method is the common capability set every NetConstruction trait
// implements: checkValue, nRows, nCols, makeMatrix, valueSpaceForCoord,
// sampleRandom, format.
type Method interface {
	// CheckValue validates a value against this construction's constraints.
	CheckValue(v Value) error
	// NRows and NCols give the shape of the generating matrix this
	// construction produces.
	NRows() int
	NCols() int
	// MakeMatrix builds the (NRows, NCols) generating matrix for v.
	MakeMatrix(v Value) (*gf2.Matrix, error)
	// ValueSpaceForCoord returns the candidate value space for coordinate
	// coord (0-indexed); some constructions vary it per coordinate (Sobol's
	// primitive polynomial table is indexed by coordinate).
	ValueSpaceForCoord(coord int) (ValueSpace, error)
	// SampleRandom draws one uniformly random valid value for coordinate
	// coord using r.
	SampleRandom(r *rng.RNG, coord int) (Value, error)
	// Format renders v for the CLI's human/machine report.
	Format(v Value) string
}

// sliceValueSpace is a ValueSpace backed by a concrete, already-enumerated
// slice of values — the common case for small finite spaces.
type sliceValueSpace struct {
	values []Value
}

func (s sliceValueSpace) Count() int    { return len(s.values) }
func (s sliceValueSpace) At(i int) Value { return s.values[i] }

func boundsCheck(i, n int, what string) error {
	if i < 0 || i >= n {
		return fmt.Errorf("construct: %s index %d out of [0,%d): %w", what, i, n, latnet.ErrOutOfBounds)
	}
	return nil
}
