package construct

import (
	"fmt"

	"latnetsearch/internal/gf2"
	"latnetsearch/latnet"
)

// coordinateData is one coordinate's generating value together with its
// derived matrix, computed once and shared by every Net built from it.
type coordinateData struct {
	value  Value
	matrix *gf2.Matrix
}

// Net is a Constructed net: it owns a size parameter (via
// method) and, per coordinate, a generating value together with its
// derived matrix. ExtendDimension returns a new Net that shares all
// existing per-coordinate data and appends one coordinate — the shared
// ownership CBC search needs when it retains a prefix net while exploring
// extensions of it, since building dim independent copies of every matrix
// already fixed in the prefix would be wasted work on every CBC step.
type Net struct {
	method method
	coords []*coordinateData
}

// method is the subset of Method a Net needs to validate and materialize
// one more coordinate; a plain Method satisfies it.
type method interface {
	CheckValue(v Value) error
	MakeMatrix(v Value) (*gf2.Matrix, error)
}

// NewNet returns the empty (zero-coordinate) Constructed net for method.
func NewNet(m method) *Net {
	return &Net{method: m}
}

// Dimension reports how many coordinates this net currently owns.
func (n *Net) Dimension() int {
	return len(n.coords)
}

// Value returns the generating value at coordinate i.
func (n *Net) Value(i int) (Value, error) {
	if i < 0 || i >= len(n.coords) {
		return nil, fmt.Errorf("construct: net coordinate %d out of [0,%d): %w", i, len(n.coords), latnet.ErrOutOfBounds)
	}
	return n.coords[i].value, nil
}

// Matrix returns the derived generating matrix at coordinate i.
func (n *Net) Matrix(i int) (*gf2.Matrix, error) {
	if i < 0 || i >= len(n.coords) {
		return nil, fmt.Errorf("construct: net coordinate %d out of [0,%d): %w", i, len(n.coords), latnet.ErrOutOfBounds)
	}
	return n.coords[i].matrix, nil
}

// Values returns every coordinate's generating value, in order.
func (n *Net) Values() []Value {
	out := make([]Value, len(n.coords))
	for i, c := range n.coords {
		out[i] = c.value
	}
	return out
}

// ExtendDimension validates newValue, builds its generating matrix, and
// returns a new Net whose first Dimension() coordinates are the same
// *coordinateData pointers as n's (shared, not copied) with one more
// coordinate appended. n itself is left untouched, so a CBC search can
// hold a prefix net fixed while trying several candidate extensions of it
// without re-deriving any of the prefix's matrices.
func (n *Net) ExtendDimension(newValue Value) (*Net, error) {
	if err := n.method.CheckValue(newValue); err != nil {
		return nil, err
	}
	m, err := n.method.MakeMatrix(newValue)
	if err != nil {
		return nil, fmt.Errorf("construct: extending net to coordinate %d: %w", len(n.coords), err)
	}
	extended := make([]*coordinateData, len(n.coords), len(n.coords)+1)
	copy(extended, n.coords)
	extended = append(extended, &coordinateData{value: newValue, matrix: m})
	return &Net{method: n.method, coords: extended}, nil
}
