package search

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"latnetsearch/latnet"
	"latnetsearch/latnet/lattice"
	"latnetsearch/latnet/merit"
	"latnetsearch/latnet/rng"
	"latnetsearch/measure"
)

// LatticeFigure is the capability set RunLatticeSearch drives a rank-1
// lattice candidate through: *merit.KernelFigure satisfies it directly,
// and is the only figure family that is coordinate-uniform (the one
// FastCBC is allowed to specialize for).
type LatticeFigure interface {
	Start(dimension int, bestSoFar float64) error
	AddCoordinate(coord int, values []float64) error
	Finish() (float64, error)
	CurrentState() merit.State
}

// allPoints enumerates i = 0..n-1 as big.Ints once per value, since
// lattice.Method.Coordinate takes a point index rather than iterating
// them itself.
func allPoints(n *big.Int) []*big.Int {
	count := n.Int64()
	points := make([]*big.Int, count)
	for i := range points {
		points[i] = big.NewInt(int64(i))
	}
	return points
}

func formatLatticeCandidate(method lattice.Method, values []lattice.Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = method.Format(v)
	}
	return strings.Join(parts, " | ")
}

func evaluateLatticeCandidate(method lattice.Method, fig LatticeFigure, values []lattice.Value, points []*big.Int, bestSoFar float64) (meritVal float64, aborted bool, err error) {
	defer measure.Timings.Track(time.Now(), "evaluateLatticeCandidate")
	if err := fig.Start(len(values), bestSoFar); err != nil {
		return 0, false, err
	}
	row := make([]float64, len(points))
	for coord, v := range values {
		if err := method.CheckValue(v); err != nil {
			return 0, false, err
		}
		for i, p := range points {
			x, err := method.Coordinate(v, p)
			if err != nil {
				return 0, false, fmt.Errorf("search: evaluating lattice coordinate %d point %s: %w", coord, p, err)
			}
			row[i] = x
		}
		measure.Global.Add("lattice.points_evaluated", int64(len(points)))
		if err := fig.AddCoordinate(coord, row); err != nil {
			if errors.Is(err, latnet.ErrAborted) {
				return 0, true, nil
			}
			return 0, false, err
		}
	}
	meritVal, err = fig.Finish()
	measure.Global.Add("lattice.candidates_evaluated", 1)
	return meritVal, false, err
}

// RunLatticeSearch explores method's value spaces across dim coordinates
// for a rank-1 lattice of size method.N(), evaluating each candidate
// through fig. FastCBC tries runLatticeFastCBC's convolution-based
// construction first; that only applies to an Ordinary lattice of prime
// size with Product weights feeding a *merit.KernelFigure (the exact
// conditions the group-structure trick needs — see that function's doc
// comment), so anything else falls back to runLatticeCBC.
func RunLatticeSearch(strategy Strategy, method lattice.Method, dim int, fig LatticeFigure, obs *MinimumObserver, opts RandomOpts) ([]lattice.Value, float64, error) {
	if dim <= 0 {
		return nil, 0, fmt.Errorf("search: dim must be positive, got %d: %w", dim, latnet.ErrConfiguration)
	}
	n := method.N()
	if !n.IsInt64() || n.Int64() > 1<<20 {
		return nil, 0, fmt.Errorf("search: lattice size %s is too large to enumerate points over: %w", n, latnet.ErrConfiguration)
	}
	points := allPoints(n)

	switch strategy {
	case Exhaustive:
		return runLatticeExhaustive(method, dim, fig, obs, points)
	case Random:
		return runLatticeRandom(method, dim, fig, obs, opts, points)
	case CBC:
		return runLatticeCBC(method, dim, fig, obs, points)
	case FastCBC:
		values, m, err := runLatticeFastCBC(method, dim, fig, obs, points)
		if err == nil {
			return values, m, nil
		}
		if !errors.Is(err, latnet.ErrConfiguration) {
			return nil, 0, err
		}
		return runLatticeCBC(method, dim, fig, obs, points)
	default:
		return nil, 0, fmt.Errorf("search: unknown strategy %v: %w", strategy, latnet.ErrConfiguration)
	}
}

func runLatticeExhaustive(method lattice.Method, dim int, fig LatticeFigure, obs *MinimumObserver, points []*big.Int) ([]lattice.Value, float64, error) {
	spaces := make([]lattice.ValueSpace, dim)
	for coord := 0; coord < dim; coord++ {
		vs, err := method.ValueSpaceForCoord(coord)
		if err != nil {
			return nil, 0, err
		}
		if vs.Count() < 0 {
			return nil, 0, fmt.Errorf("search: exhaustive search needs a finite value space at coordinate %d: %w", coord, latnet.ErrConfiguration)
		}
		spaces[coord] = vs
	}

	var bestValues []lattice.Value
	indices := make([]int, dim)
	values := make([]lattice.Value, dim)
	for {
		for coord, idx := range indices {
			values[coord] = spaces[coord].At(idx)
		}
		candidate := append([]lattice.Value(nil), values...)
		m, aborted, err := evaluateLatticeCandidate(method, fig, candidate, points, obs.BestMerit())
		if err != nil {
			return nil, 0, err
		}
		if aborted {
			obs.OnAbort(formatLatticeCandidate(method, candidate))
		} else if obs.Record(formatLatticeCandidate(method, candidate), m) {
			bestValues = candidate
		}

		coord := dim - 1
		for coord >= 0 {
			indices[coord]++
			if indices[coord] < spaces[coord].Count() {
				break
			}
			indices[coord] = 0
			coord--
		}
		if coord < 0 {
			break
		}
	}

	if _, _, err := obs.Result(); err != nil {
		return nil, 0, err
	}
	return bestValues, obs.BestMerit(), nil
}

func runLatticeRandom(method lattice.Method, dim int, fig LatticeFigure, obs *MinimumObserver, opts RandomOpts, points []*big.Int) ([]lattice.Value, float64, error) {
	if opts.NBTries <= 0 {
		return nil, 0, fmt.Errorf("search: random search needs NBTries > 0, got %d: %w", opts.NBTries, latnet.ErrConfiguration)
	}
	r := rng.FromSeed(opts.Seed)
	var bestValues []lattice.Value
	for try := 0; try < opts.NBTries; try++ {
		candidate := make([]lattice.Value, dim)
		for coord := 0; coord < dim; coord++ {
			v, err := method.SampleRandom(r, coord)
			if err != nil {
				return nil, 0, err
			}
			candidate[coord] = v
		}
		m, aborted, err := evaluateLatticeCandidate(method, fig, candidate, points, obs.BestMerit())
		if err != nil {
			return nil, 0, err
		}
		if aborted {
			obs.OnAbort(formatLatticeCandidate(method, candidate))
		} else if obs.Record(formatLatticeCandidate(method, candidate), m) {
			bestValues = candidate
		}
	}
	if _, _, err := obs.Result(); err != nil {
		return nil, 0, err
	}
	return bestValues, obs.BestMerit(), nil
}

func runLatticeCBC(method lattice.Method, dim int, fig LatticeFigure, obs *MinimumObserver, points []*big.Int) ([]lattice.Value, float64, error) {
	prefix := make([]lattice.Value, 0, dim)
	stepMerit := 0.0
	for d := 0; d < dim; d++ {
		vs, err := method.ValueSpaceForCoord(d)
		if err != nil {
			return nil, 0, err
		}
		if vs.Count() < 0 {
			return nil, 0, fmt.Errorf("search: CBC search needs a finite value space at coordinate %d: %w", d, latnet.ErrConfiguration)
		}
		step := NewMinimumObserver()
		var stepBestValue lattice.Value
		for i := 0; i < vs.Count(); i++ {
			candidate := append(append([]lattice.Value(nil), prefix...), vs.At(i))
			m, aborted, err := evaluateLatticeCandidate(method, fig, candidate, points, step.BestMerit())
			if err != nil {
				return nil, 0, err
			}
			if aborted {
				step.OnAbort(formatLatticeCandidate(method, candidate))
				continue
			}
			if step.Record(formatLatticeCandidate(method, candidate), m) {
				stepBestValue = candidate[len(candidate)-1]
			}
		}
		if _, _, err := step.Result(); err != nil {
			return nil, 0, fmt.Errorf("search: CBC found no finite-merit candidate at coordinate %d: %w", d, latnet.ErrNoCandidate)
		}
		prefix = append(prefix, stepBestValue)
		stepMerit = step.BestMerit()
	}
	obs.Record(formatLatticeCandidate(method, prefix), stepMerit)
	return prefix, stepMerit, nil
}
