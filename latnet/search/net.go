package search

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"latnetsearch/internal/gf2"
	"latnetsearch/latnet"
	"latnetsearch/latnet/construct"
	"latnetsearch/latnet/merit"
	"latnetsearch/latnet/rng"
	"latnetsearch/measure"
)

// NetFigure is the capability set RunNetSearch drives a digital-net
// candidate through: *merit.TValueFigure satisfies it directly.
type NetFigure interface {
	Start(bestSoFar float64)
	AddCoordinate(m *gf2.Matrix) error
	Finish() (float64, error)
	CurrentState() merit.State
}

// RunNetSearch explores method's value spaces across dim coordinates using
// strategy, evaluating each candidate through fig, and returns the winning
// per-coordinate generating values and merit. obs records progress and the
// running best; its AbortHook/FailedSearchHook (if set) are invoked
// whenever a candidate is abandoned or the whole search comes up empty.
func RunNetSearch(strategy Strategy, method construct.Method, dim int, fig NetFigure, obs *MinimumObserver, opts RandomOpts) ([]construct.Value, float64, error) {
	if dim <= 0 {
		return nil, 0, fmt.Errorf("search: dim must be positive, got %d: %w", dim, latnet.ErrConfiguration)
	}
	switch strategy {
	case Exhaustive:
		return runNetExhaustive(method, dim, fig, obs)
	case Random:
		return runNetRandom(method, dim, fig, obs, opts)
	case CBC:
		return runNetCBC(method, dim, fig, obs)
	case FastCBC:
		return nil, 0, fmt.Errorf("search: fast-CBC requires a coordinate-uniform figure; the t-value figure is not one: %w", latnet.ErrConfiguration)
	default:
		return nil, 0, fmt.Errorf("search: unknown strategy %v: %w", strategy, latnet.ErrConfiguration)
	}
}

func formatNetCandidate(method construct.Method, values []construct.Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = method.Format(v)
	}
	return strings.Join(parts, " | ")
}

// evaluateNetCandidate builds the generating matrix for each value and
// feeds it to fig one coordinate at a time, so early abortion fires the
// instant the running partial merit proves the candidate cannot beat
// bestSoFar. aborted is true only when fig signalled latnet.ErrAborted;
// any other error is a real failure.
func evaluateNetCandidate(method construct.Method, fig NetFigure, values []construct.Value, bestSoFar float64) (meritVal float64, aborted bool, err error) {
	defer measure.Timings.Track(time.Now(), "evaluateNetCandidate")
	fig.Start(bestSoFar)
	for _, v := range values {
		if err := method.CheckValue(v); err != nil {
			return 0, false, err
		}
		m, err := method.MakeMatrix(v)
		if err != nil {
			return 0, false, fmt.Errorf("search: building generating matrix: %w", err)
		}
		measure.Global.Add("net.matrix_bytes", measure.BytesMatrix(method.NRows(), method.NCols()))
		measure.Global.Add("net.coordinates_evaluated", 1)
		if err := fig.AddCoordinate(m); err != nil {
			if errors.Is(err, latnet.ErrAborted) {
				return 0, true, nil
			}
			return 0, false, err
		}
	}
	meritVal, err = fig.Finish()
	measure.Global.Add("net.candidates_evaluated", 1)
	return meritVal, false, err
}

func runNetExhaustive(method construct.Method, dim int, fig NetFigure, obs *MinimumObserver) ([]construct.Value, float64, error) {
	spaces := make([]construct.ValueSpace, dim)
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

	var bestValues []construct.Value
	indices := make([]int, dim)
	values := make([]construct.Value, dim)
	for {
		for coord, idx := range indices {
			values[coord] = spaces[coord].At(idx)
		}
		candidate := append([]construct.Value(nil), values...)
		m, aborted, err := evaluateNetCandidate(method, fig, candidate, obs.BestMerit())
		if err != nil {
			return nil, 0, err
		}
		if aborted {
			obs.OnAbort(formatNetCandidate(method, candidate))
		} else if obs.Record(formatNetCandidate(method, candidate), m) {
			bestValues = candidate
		}

		// odometer increment
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

func runNetRandom(method construct.Method, dim int, fig NetFigure, obs *MinimumObserver, opts RandomOpts) ([]construct.Value, float64, error) {
	if opts.NBTries <= 0 {
		return nil, 0, fmt.Errorf("search: random search needs NBTries > 0, got %d: %w", opts.NBTries, latnet.ErrConfiguration)
	}
	r := rng.FromSeed(opts.Seed)
	var bestValues []construct.Value
	for try := 0; try < opts.NBTries; try++ {
		candidate := make([]construct.Value, dim)
		for coord := 0; coord < dim; coord++ {
			v, err := method.SampleRandom(r, coord)
			if err != nil {
				return nil, 0, err
			}
			candidate[coord] = v
		}
		m, aborted, err := evaluateNetCandidate(method, fig, candidate, obs.BestMerit())
		if err != nil {
			return nil, 0, err
		}
		if aborted {
			obs.OnAbort(formatNetCandidate(method, candidate))
		} else if obs.Record(formatNetCandidate(method, candidate), m) {
			bestValues = candidate
		}
	}
	if _, _, err := obs.Result(); err != nil {
		return nil, 0, err
	}
	return bestValues, obs.BestMerit(), nil
}

// evaluateNet feeds an already-built Net's matrices to fig one coordinate
// at a time. Unlike evaluateNetCandidate, it never calls MakeMatrix itself
// — every coordinate's matrix was already derived (and, for a prefix
// shared across several extensions, derived only once) when the Net was
// built via NewNet/ExtendDimension.
func evaluateNet(fig NetFigure, net *construct.Net, bestSoFar float64) (meritVal float64, aborted bool, err error) {
	defer measure.Timings.Track(time.Now(), "evaluateNet")
	fig.Start(bestSoFar)
	for i := 0; i < net.Dimension(); i++ {
		m, err := net.Matrix(i)
		if err != nil {
			return 0, false, err
		}
		measure.Global.Add("net.coordinates_evaluated", 1)
		if err := fig.AddCoordinate(m); err != nil {
			if errors.Is(err, latnet.ErrAborted) {
				return 0, true, nil
			}
			return 0, false, err
		}
	}
	meritVal, err = fig.Finish()
	measure.Global.Add("net.candidates_evaluated", 1)
	return meritVal, false, err
}

// runNetCBC grows one coordinate at a time: for coordinate d it holds the
// winning prefix fixed (as a *construct.Net, sharing the prefix's
// already-built matrices per coordinate) and tries every candidate value
// at d, keeping the extension with the best merit. Ties resolve to the
// first-seen candidate, since Record only replaces on a strict
// improvement.
func runNetCBC(method construct.Method, dim int, fig NetFigure, obs *MinimumObserver) ([]construct.Value, float64, error) {
	prefix := construct.NewNet(method)
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
		step.AbortHook = obs.AbortHook
		step.FailedSearchHook = obs.FailedSearchHook
		var stepBest *construct.Net
		for i := 0; i < vs.Count(); i++ {
			extended, err := prefix.ExtendDimension(vs.At(i))
			if err != nil {
				return nil, 0, err
			}
			m, aborted, err := evaluateNet(fig, extended, step.BestMerit())
			if err != nil {
				return nil, 0, err
			}
			if aborted {
				step.OnAbort(formatNetCandidate(method, extended.Values()))
				continue
			}
			if step.Record(formatNetCandidate(method, extended.Values()), m) {
				stepBest = extended
			}
		}
		if _, _, err := step.Result(); err != nil {
			return nil, 0, fmt.Errorf("search: CBC found no finite-merit candidate at coordinate %d: %w", d, latnet.ErrNoCandidate)
		}
		prefix = stepBest
		stepMerit = step.BestMerit()
	}
	obs.Record(formatNetCandidate(method, prefix.Values()), stepMerit)
	return prefix.Values(), stepMerit, nil
}
