package gf2

import (
	"fmt"
	"sort"

	"latnetsearch/internal/gf2dbg"
	"latnetsearch/latnet"
)

// Reducer maintains an online reduced row-echelon form of an R x C bit
// matrix under three mutations: AddRow, AddColumn, and ReplaceRow. It is
// exclusively owned by its current computation; nothing about it is safe
// for concurrent use.
type Reducer struct {
	r, c int

	reduced *Matrix // R x C, current reduced form
	ops     *Matrix // R x R, ops[i] records the combination of original rows producing reduced[i]

	pivotByRow map[int]int // row -> pivot column
	pivotByCol map[int]int // column -> pivot row

	colsWithoutPivot []int // ascending
	rowsWithoutPivot []int // insertion order

	smallestFullRank int
}

// NewReducer returns an empty reducer over C columns.
func NewReducer(c int) *Reducer {
	cols := make([]int, c)
	for i := range cols {
		cols[i] = i
	}
	return &Reducer{
		c:                c,
		reduced:          NewMatrix(0, c),
		ops:              NewMatrix(0, 0),
		pivotByRow:       make(map[int]int),
		pivotByCol:       make(map[int]int),
		colsWithoutPivot: cols,
		smallestFullRank: 0,
	}
}

// NRows returns the current row count R.
func (red *Reducer) NRows() int { return red.r }

// NCols returns the fixed column count C.
func (red *Reducer) NCols() int { return red.c }

// Reduced exposes the live reduced matrix. Callers must treat it as
// read-only: mutating it directly breaks the reducer's invariants.
func (red *Reducer) Reduced() *Matrix { return red.reduced }

// Ops exposes the live ops matrix. Read-only, like Reduced.
func (red *Reducer) Ops() *Matrix { return red.ops }

// Rank returns the number of rows that currently hold a pivot.
func (red *Reducer) Rank() int { return len(red.pivotByRow) }

// SmallestFullRank returns the least C* such that the first C* columns span
// the full row rank (i.e. every row currently holds a pivot); C+1 if the
// rank never reaches R (some row is a linear combination of others, or is
// zero).
func (red *Reducer) SmallestFullRank() int { return red.smallestFullRank }

// PivotColumn returns the pivot column of row i and whether it has one.
func (red *Reducer) PivotColumn(row int) (int, bool) {
	c, ok := red.pivotByRow[row]
	return c, ok
}

// PivotRow returns the pivot row of column c and whether it has one.
func (red *Reducer) PivotRow(col int) (int, bool) {
	r, ok := red.pivotByCol[col]
	return r, ok
}

// AddRow stacks one new row below the current matrix and reduces it
// against existing pivots. newRow must have length C.
func (red *Reducer) AddRow(newRow []bool) error {
	if len(newRow) != red.c {
		return fmt.Errorf("gf2: addRow length %d, want %d: %w", len(newRow), red.c, latnet.ErrShapeMismatch)
	}
	oldR := red.r
	newRowIdx := oldR

	grown := NewMatrix(oldR+1, red.c)
	for i := 0; i < oldR; i++ {
		grown.SetPackedRow(i, red.reduced.RowWords(i))
	}
	grown.SetRow(newRowIdx, newRow)
	red.reduced = grown

	grownOps := NewMatrix(oldR+1, oldR+1)
	for i := 0; i < oldR; i++ {
		row := make([]bool, oldR+1)
		for j := 0; j < oldR; j++ {
			row[j] = red.ops.Get(i, j)
		}
		grownOps.SetRow(i, row)
	}
	selfRow := make([]bool, oldR+1)
	selfRow[newRowIdx] = true
	grownOps.SetRow(newRowIdx, selfRow)
	red.ops = grownOps
	red.r = oldR + 1

	red.reduceAgainstPivots(newRowIdx)

	if red.reduced.IsRowZero(newRowIdx) {
		red.rowsWithoutPivot = append(red.rowsWithoutPivot, newRowIdx)
	} else {
		col, ok := red.reduced.FirstSetBit(newRowIdx, 0)
		if !ok {
			panic("gf2: nonzero row reports no set bit")
		}
		red.claimPivot(newRowIdx, col)
		red.eliminateColumnElsewhere(newRowIdx, col)
	}
	red.recomputeSmallestFullRank()
	red.check()
	return nil
}

// AddColumn appends one new column, given as it reads in the original
// (unreduced) matrix — one entry per row added so far.
func (red *Reducer) AddColumn(newCol []bool) error {
	if len(newCol) != red.r {
		return fmt.Errorf("gf2: addColumn length %d, want %d: %w", len(newCol), red.r, latnet.ErrShapeMismatch)
	}
	reducedVals := make([]bool, red.r)
	for i := 0; i < red.r; i++ {
		var bit bool
		opsRow := red.ops.RowWords(i)
		for j := 0; j < red.r; j++ {
			word := opsRow[j/64]
			if word&(uint64(1)<<uint(j%64)) != 0 && newCol[j] {
				bit = !bit
			}
		}
		reducedVals[i] = bit
	}

	grown := NewMatrix(red.r, red.c+1)
	for i := 0; i < red.r; i++ {
		for j := 0; j < red.c; j++ {
			grown.Set(i, j, red.reduced.Get(i, j))
		}
		grown.Set(i, red.c, reducedVals[i])
	}
	red.reduced = grown
	newColIdx := red.c
	red.c++
	red.colsWithoutPivot = append(red.colsWithoutPivot, newColIdx)

	for idx, rr := range red.rowsWithoutPivot {
		if reducedVals[rr] {
			red.rowsWithoutPivot = append(red.rowsWithoutPivot[:idx], red.rowsWithoutPivot[idx+1:]...)
			red.claimPivot(rr, newColIdx)
			red.eliminateColumnElsewhere(rr, newColIdx)
			break
		}
	}
	red.recomputeSmallestFullRank()
	red.check()
	return nil
}

// ReplaceRow substitutes row i's original content by newRow and restores
// reduced row-echelon form. This is the hot path used by the t-value
// engine: it runs in time proportional to one row reduction, not a full
// re-reduction of the matrix.
func (red *Reducer) ReplaceRow(i int, newRow []bool) error {
	if i < 0 || i >= red.r {
		return fmt.Errorf("gf2: replaceRow index %d out of [0,%d): %w", i, red.r, latnet.ErrOutOfBounds)
	}
	if len(newRow) != red.c {
		return fmt.Errorf("gf2: replaceRow length %d, want %d: %w", len(newRow), red.c, latnet.ErrShapeMismatch)
	}

	var vacated int = -1
	if col, had := red.pivotByRow[i]; had {
		vacated = col
		delete(red.pivotByRow, i)
		delete(red.pivotByCol, col)
		red.insertColWithoutPivot(col)
	} else {
		red.removeRowWithoutPivot(i)
	}

	red.reduced.SetRow(i, newRow)
	eRow := make([]bool, red.r)
	eRow[i] = true
	red.ops.SetRow(i, eRow)

	red.reduceAgainstPivots(i)

	if col, ok := red.findFreeColumn(i); ok {
		red.claimPivot(i, col)
		red.eliminateColumnElsewhere(i, col)
	} else {
		red.rowsWithoutPivot = append(red.rowsWithoutPivot, i)
	}

	if vacated >= 0 {
		if _, stillFree := red.colWithoutPivotIndex(vacated); stillFree {
			for idx, rr := range red.rowsWithoutPivot {
				if rr == i {
					continue
				}
				if red.reduced.Get(rr, vacated) {
					red.rowsWithoutPivot = append(red.rowsWithoutPivot[:idx], red.rowsWithoutPivot[idx+1:]...)
					red.claimPivot(rr, vacated)
					red.eliminateColumnElsewhere(rr, vacated)
					break
				}
			}
		}
	}

	red.recomputeSmallestFullRank()
	red.check()
	return nil
}

// ComputeRanks returns, for c = firstCol, firstCol+1, ..., firstCol+n-1,
// the rank of the submatrix on the first c+1 columns.
func (red *Reducer) ComputeRanks(firstCol, n int) ([]int, error) {
	if firstCol < 0 || n < 0 || firstCol+n > red.c {
		return nil, fmt.Errorf("gf2: computeRanks range [%d,%d) out of [0,%d): %w", firstCol, firstCol+n, red.c, latnet.ErrOutOfBounds)
	}
	cols := make([]int, 0, len(red.pivotByCol))
	for col := range red.pivotByCol {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	out := make([]int, n)
	idx := 0
	count := 0
	for i := 0; i < n; i++ {
		c := firstCol + i
		for idx < len(cols) && cols[idx] <= c {
			count++
			idx++
		}
		out[i] = count
	}
	return out, nil
}

func (red *Reducer) claimPivot(row, col int) {
	red.pivotByRow[row] = col
	red.pivotByCol[col] = row
	red.removeColWithoutPivot(col)
}

// reduceAgainstPivots eliminates every current pivot column from the given
// row by XOR-ing in the corresponding pivot row (and updating ops to match).
func (red *Reducer) reduceAgainstPivots(row int) {
	cols := make([]int, 0, len(red.pivotByCol))
	for col := range red.pivotByCol {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	for _, col := range cols {
		pivotRow := red.pivotByCol[col]
		if pivotRow == row {
			continue
		}
		if red.reduced.Get(row, col) {
			red.reduced.RowXOR(row, pivotRow)
			red.ops.RowXOR(row, pivotRow)
		}
	}
}

// eliminateColumnElsewhere clears column col from every row but pivotRow by
// XOR-ing pivotRow into any row that still has a 1 there.
func (red *Reducer) eliminateColumnElsewhere(pivotRow, col int) {
	for r := 0; r < red.r; r++ {
		if r == pivotRow {
			continue
		}
		if red.reduced.Get(r, col) {
			red.reduced.RowXOR(r, pivotRow)
			red.ops.RowXOR(r, pivotRow)
		}
	}
}

// findFreeColumn scans colsWithoutPivot in ascending order for the first
// column where row has a 1 bit.
func (red *Reducer) findFreeColumn(row int) (int, bool) {
	for _, col := range red.colsWithoutPivot {
		if red.reduced.Get(row, col) {
			return col, true
		}
	}
	return 0, false
}

func (red *Reducer) colWithoutPivotIndex(col int) (int, bool) {
	i := sort.SearchInts(red.colsWithoutPivot, col)
	if i < len(red.colsWithoutPivot) && red.colsWithoutPivot[i] == col {
		return i, true
	}
	return 0, false
}

func (red *Reducer) insertColWithoutPivot(col int) {
	i := sort.SearchInts(red.colsWithoutPivot, col)
	red.colsWithoutPivot = append(red.colsWithoutPivot, 0)
	copy(red.colsWithoutPivot[i+1:], red.colsWithoutPivot[i:])
	red.colsWithoutPivot[i] = col
}

func (red *Reducer) removeColWithoutPivot(col int) {
	if i, ok := red.colWithoutPivotIndex(col); ok {
		red.colsWithoutPivot = append(red.colsWithoutPivot[:i], red.colsWithoutPivot[i+1:]...)
	}
}

func (red *Reducer) removeRowWithoutPivot(row int) {
	for i, r := range red.rowsWithoutPivot {
		if r == row {
			red.rowsWithoutPivot = append(red.rowsWithoutPivot[:i], red.rowsWithoutPivot[i+1:]...)
			return
		}
	}
}

// recomputeSmallestFullRank implements the invariant from the data model:
// if any row is still pivot-free the matrix hasn't reached full row rank,
// so the sentinel C+1 applies; otherwise it's one past the largest pivot
// column actually in use.
func (red *Reducer) recomputeSmallestFullRank() {
	if len(red.rowsWithoutPivot) > 0 {
		red.smallestFullRank = red.c + 1
		return
	}
	if red.r == 0 {
		red.smallestFullRank = 0
		return
	}
	max := -1
	for col := range red.pivotByCol {
		if col > max {
			max = col
		}
	}
	red.smallestFullRank = max + 1
}

func (red *Reducer) check() {
	gf2dbg.Check(len(red.pivotByRow)+len(red.rowsWithoutPivot) == red.r,
		"|pivotByRow|(%d) + |rowsWithoutPivot|(%d) != R(%d)", len(red.pivotByRow), len(red.rowsWithoutPivot), red.r)
	for row, col := range red.pivotByRow {
		gf2dbg.Check(red.reduced.Get(row, col), "pivot (%d,%d) not set", row, col)
		for r := 0; r < red.r; r++ {
			if r == row {
				continue
			}
			gf2dbg.Check(!red.reduced.Get(r, col), "pivot column %d not clean at row %d", col, r)
		}
	}
}
