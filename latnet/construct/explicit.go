package construct

import (
	"fmt"

	"latnetsearch/internal/gf2"
	"latnetsearch/latnet"
	"latnetsearch/latnet/rng"
)

// ExplicitValue is the generating value for one coordinate of an Explicit
// net: the matrix itself, as one []bool per row.
type ExplicitValue struct {
	Rows [][]bool
}

// Explicit implements Method for the Explicit net construction, where the
// generating value IS the matrix. Unilevel random sampling rejects until
// the rows are linearly independent; multilevel sampling instead shapes
// each row with a fixed pivot and zeroed trailing columns, which makes
// every row-prefix automatically full rank without any rejection.
type Explicit struct {
	r, c      int
	multilevel bool
}

// NewExplicit returns an Explicit construction of shape (r, c). multilevel
// selects the trailing-zero row-shaping sampler used by embedded nets.
func NewExplicit(r, c int, multilevel bool) (*Explicit, error) {
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("construct: explicit requires positive shape, got (%d,%d): %w", r, c, latnet.ErrConfiguration)
	}
	return &Explicit{r: r, c: c, multilevel: multilevel}, nil
}

func (e *Explicit) NRows() int { return e.r }
func (e *Explicit) NCols() int { return e.c }

// CheckValue requires the right shape, and — for unilevel nets — full row
// rank (generating matrices of an explicit unilevel net must be
// nonsingular to define a valid digital net).
func (e *Explicit) CheckValue(v Value) error {
	ev, ok := v.(ExplicitValue)
	if !ok {
		return fmt.Errorf("construct: explicit value has wrong type %T: %w", v, latnet.ErrConfiguration)
	}
	if len(ev.Rows) != e.r {
		return fmt.Errorf("construct: explicit value has %d rows, want %d: %w", len(ev.Rows), e.r, latnet.ErrShapeMismatch)
	}
	for i, row := range ev.Rows {
		if len(row) != e.c {
			return fmt.Errorf("construct: explicit value row %d has %d columns, want %d: %w", i, len(row), e.c, latnet.ErrShapeMismatch)
		}
	}
	if !e.multilevel && !isFullRowRank(ev.Rows, e.c) {
		return fmt.Errorf("construct: explicit unilevel value's rows are not linearly independent: %w", latnet.ErrConfiguration)
	}
	return nil
}

func isFullRowRank(rows [][]bool, c int) bool {
	red := gf2.NewReducer(c)
	for _, row := range rows {
		if err := red.AddRow(row); err != nil {
			return false
		}
	}
	return red.Rank() == len(rows)
}

// MakeMatrix copies the value directly into a gf2.Matrix.
func (e *Explicit) MakeMatrix(v Value) (*gf2.Matrix, error) {
	if err := e.CheckValue(v); err != nil {
		return nil, err
	}
	ev := v.(ExplicitValue)
	out := gf2.NewMatrix(e.r, e.c)
	for i, row := range ev.Rows {
		out.SetRow(i, row)
	}
	return out, nil
}

// ValueSpaceForCoord has no finite enumeration for Explicit (the value
// space is the full set of R x C bit matrices, astronomically large for
// any nontrivial shape); Exhaustive search over Explicit nets is only
// meaningful in combination with a construction that does offer one, so
// this returns an unbounded space.
func (e *Explicit) ValueSpaceForCoord(coord int) (ValueSpace, error) {
	_ = coord
	return unboundedValueSpace{}, nil
}

type unboundedValueSpace struct{}

func (unboundedValueSpace) Count() int    { return -1 }
func (unboundedValueSpace) At(i int) Value { panic("construct: explicit value space has no finite enumeration") }

// SampleRandom draws a random candidate matrix for coordinate coord,
// rejecting (unilevel) or shaping (multilevel) to satisfy CheckValue.
func (e *Explicit) SampleRandom(r *rng.RNG, coord int) (Value, error) {
	_ = coord
	if e.multilevel {
		rows := make([][]bool, e.r)
		for i := 0; i < e.r; i++ {
			row := make([]bool, e.c)
			pivot := i
			if pivot >= e.c {
				pivot = e.c - 1
			}
			for col := 0; col < pivot; col++ {
				row[col] = r.Bool()
			}
			row[pivot] = true
			rows[i] = row
		}
		return ExplicitValue{Rows: rows}, nil
	}

	for attempt := 0; attempt < 10000; attempt++ {
		rows := make([][]bool, e.r)
		for i := range rows {
			rows[i] = r.Bits(e.c)
		}
		if isFullRowRank(rows, e.c) {
			return ExplicitValue{Rows: rows}, nil
		}
	}
	return nil, fmt.Errorf("construct: explicit random sampling failed to find a full-rank matrix: %w", latnet.ErrNoCandidate)
}

// Format renders the matrix as one row per line of 0/1 digits.
func (e *Explicit) Format(v Value) string {
	ev, ok := v.(ExplicitValue)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	s := ""
	for _, row := range ev.Rows {
		for _, b := range row {
			if b {
				s += "1"
			} else {
				s += "0"
			}
		}
		s += "\n"
	}
	return s
}
