// Package tvalue computes the quality parameter t of a digital net: the
// single-net t-value via one progressive row reducer driven by a
// composition enumerator, and the per-embedding-level t-sequence for
// multilevel nets.
//
// The engine threads one mutable reducer through the whole composition
// sweep rather than rebuilding it per step.
package tvalue

import (
	"fmt"

	"latnetsearch/internal/gf2"
	"latnetsearch/latnet"
	"latnetsearch/latnet/composition"
)

// originKey identifies a row of an original generating matrix: which
// matrix (0-indexed) and which row within it (0-indexed).
type originKey struct {
	matrixIdx, rowWithin int
}

// Single computes the t-value of a digital net given its s generating
// matrices, each of shape (R, C). By convention composition part i
// (1-indexed, as emitted by latnet/composition) corresponds to matrix
// index s-i (0-indexed): the first composition (1,...,1,k-s+1) seeds the
// reducer with one row from each of matrices s-1 down to 1, and k-s+1 rows
// from matrix 0.
func Single(matrices []*gf2.Matrix) (int, error) {
	s := len(matrices)
	if s == 0 {
		return 0, fmt.Errorf("tvalue: no matrices given: %w", latnet.ErrConfiguration)
	}
	if s == 1 {
		return 0, nil
	}
	c := matrices[0].NCols()
	for _, m := range matrices {
		if m.NCols() != c {
			return 0, fmt.Errorf("tvalue: matrix column count mismatch: %w", latnet.ErrShapeMismatch)
		}
	}

	k := c - 1
	if k < s {
		k = s
	}
	comp, err := composition.New(k, s)
	if err != nil {
		return 0, fmt.Errorf("tvalue: seeding composition: %w", err)
	}

	red := gf2.NewReducer(c)
	origin := make(map[originKey]int, k)

	matrixIdxForPart := func(part int) int { return s - part }

	first := comp.Current()
	rr := 0
	for part := 1; part <= s; part++ {
		mi := matrixIdxForPart(part)
		count := first[part-1]
		for row := 0; row < count; row++ {
			if err := red.AddRow(matrices[mi].Row(row)); err != nil {
				return 0, fmt.Errorf("tvalue: seeding reducer: %w", err)
			}
			origin[originKey{mi, row}] = rr
			rr++
		}
	}

	best := red.SmallestFullRank()

	for comp.Advance() {
		d, ok := comp.Delta()
		if !ok {
			break
		}
		fromMI := matrixIdxForPart(d.FromPart)
		fromRow := d.FromUnit - 1
		toMI := matrixIdxForPart(d.ToPart)
		toRow := d.ToUnit - 1

		key := originKey{fromMI, fromRow}
		reducerRow, found := origin[key]
		if !found {
			return 0, fmt.Errorf("tvalue: internal bookkeeping lost row (matrix %d, row %d)", fromMI, fromRow)
		}
		delete(origin, key)

		if err := red.ReplaceRow(reducerRow, matrices[toMI].Row(toRow)); err != nil {
			return 0, fmt.Errorf("tvalue: replacing row: %w", err)
		}
		origin[originKey{toMI, toRow}] = reducerRow

		if sfr := red.SmallestFullRank(); sfr > best {
			best = sfr
		}
		if best == c {
			break
		}
	}

	t := c - best
	if t < 0 {
		t = 0
	}
	return t, nil
}

// Sequence computes the per-embedding-level t-sequence for an embedded
// (multilevel) net: one t-value per level mMin+1, ..., C, tightened
// against a lower-bound vector maxSubProj (one entry per level, same
// length as the returned sequence).
//
// For s == 1, every level's t-value is 0 by definition. Otherwise, the
// sequence is obtained by evaluating Single against the first ell columns
// of every matrix, for ell ranging over the requested levels, and clamping
// each entry to at least its corresponding maxSubProj bound.
func Sequence(matrices []*gf2.Matrix, mMin int, maxSubProj []int) ([]int, error) {
	s := len(matrices)
	if s == 0 {
		return nil, fmt.Errorf("tvalue: no matrices given: %w", latnet.ErrConfiguration)
	}
	c := matrices[0].NCols()
	nLevels := c - mMin
	if nLevels < 0 {
		return nil, fmt.Errorf("tvalue: mMin=%d exceeds column count %d: %w", mMin, c, latnet.ErrConfiguration)
	}
	if len(maxSubProj) != nLevels {
		return nil, fmt.Errorf("tvalue: maxSubProj length %d, want %d: %w", len(maxSubProj), nLevels, latnet.ErrShapeMismatch)
	}

	out := make([]int, nLevels)
	if s == 1 {
		for i := range out {
			out[i] = 0
		}
		return out, nil
	}

	for i := 0; i < nLevels; i++ {
		ell := mMin + 1 + i
		prefixes := make([]*gf2.Matrix, s)
		for j, m := range matrices {
			sub, err := m.Sub(0, 0, m.NRows(), ell)
			if err != nil {
				return nil, fmt.Errorf("tvalue: taking level-%d prefix: %w", ell, err)
			}
			prefixes[j] = sub
		}
		t, err := Single(prefixes)
		if err != nil {
			return nil, fmt.Errorf("tvalue: level %d: %w", ell, err)
		}
		if t < maxSubProj[i] {
			t = maxSubProj[i]
		}
		out[i] = t
	}
	return out, nil
}
