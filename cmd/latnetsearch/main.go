// Command latnetsearch is the CLI entry point for the core search engine:
// it wires a net or lattice construction, a figure of merit, and a search
// strategy together behind a single "search" subcommand.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math"
	"math/big"
	"os"
	"strconv"
	"strings"

	"latnetsearch/latnet"
	"latnetsearch/latnet/construct"
	"latnetsearch/latnet/lattice"
	"latnetsearch/latnet/merit"
	"latnetsearch/latnet/search"
	"latnetsearch/latnet/weights"
	"latnetsearch/measure"
	"latnetsearch/measureutil"
)

func usage() {
	fmt.Println(`usage: latnetsearch search [options]

Flags:
  -kind          net|lattice                  (default: net)
  -construction  sobol|polynomial|explicit     (net) or ordinary|polynomial (lattice)
  -embedding     unilevel|multilevel           (default: unilevel; multilevel only affects -construction=explicit)
  -modulus       comma-separated exponents, e.g. "0,1,3" for x^3+x+1 (required for -construction=polynomial)
  -m             size parameter: n = 2^m points (default: 8)
  -dim           dimension (default: 3)
  -figure        tvalue|palpha|balpha|iaalpha  (default: tvalue; tvalue needs -kind=net, the rest need -kind=lattice)
  -alpha         kernel smoothness exponent (default: 2)
  -q             norm exponent, q >= 1 (default: 2)
  -weights       product|order|pod             (default: product)
  -weights-file  optional JSON weights file (overrides -weights)
  -strategy      exhaustive|random|cbc|fastcbc  (default: cbc)
  -ntries        number of tries for -strategy=random (default: 100)
  -seed          RNG seed for -strategy=random (default: 42)
  -output        human|machine                 (default: human)
  -sweep-out     optional JSONL file to append this run's result to, for cmd/latnetplot`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 || os.Args[1] != "search" {
		usage()
	}
	os.Exit(runSearch(os.Args[2:]))
}

func runSearch(args []string) int {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	kind := fs.String("kind", "net", "net|lattice")
	constructionName := fs.String("construction", "sobol", "sobol|polynomial|explicit or ordinary|polynomial")
	embedding := fs.String("embedding", "unilevel", "unilevel|multilevel")
	modulus := fs.String("modulus", "", "comma-separated exponents of the polynomial modulus")
	m := fs.Int("m", 8, "size parameter: n = 2^m points")
	dim := fs.Int("dim", 3, "dimension")
	figureName := fs.String("figure", "tvalue", "tvalue|palpha|balpha|iaalpha")
	alpha := fs.Float64("alpha", 2, "kernel smoothness exponent")
	q := fs.Float64("q", 2, "norm exponent")
	weightsShape := fs.String("weights", "product", "product|order|pod")
	weightsFile := fs.String("weights-file", "", "optional JSON weights file")
	strategyName := fs.String("strategy", "cbc", "exhaustive|random|cbc|fastcbc")
	ntries := fs.Int("ntries", 100, "tries for -strategy=random")
	seed := fs.Int64("seed", 42, "seed for -strategy=random")
	output := fs.String("output", "human", "human|machine")
	sweepOut := fs.String("sweep-out", "", "optional JSONL sweep output file")
	showMeasure := fs.Bool("measure", false, "dump candidate/matrix counters to stderr when done (also set LATNET_MEASURE=1)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showMeasure {
		defer measureutil.Dump()
		defer dumpTimings()
	}

	w, err := resolveWeights(*weightsShape, *weightsFile, *dim)
	if err != nil {
		return reportError(err)
	}

	strategy, err := parseStrategy(*strategyName)
	if err != nil {
		return reportError(err)
	}

	var (
		description string
		meritValue  float64
	)
	switch *kind {
	case "net":
		description, meritValue, err = runNetSearch(*constructionName, *embedding, *modulus, *m, *dim, *figureName, *q, w, strategy, *ntries, *seed)
	case "lattice":
		description, meritValue, err = runLatticeSearch(*constructionName, *modulus, *m, *dim, *figureName, *alpha, *q, w, strategy, *ntries, *seed)
	default:
		err = fmt.Errorf("latnetsearch: unknown -kind %q: %w", *kind, latnet.ErrConfiguration)
	}
	if err != nil {
		return reportError(err)
	}

	report(*output, *kind, *constructionName, *strategyName, *dim, *m, description, meritValue)
	if *sweepOut != "" {
		if err := appendSweepRow(*sweepOut, *kind, *constructionName, *strategyName, *dim, *m, meritValue); err != nil {
			fmt.Fprintf(os.Stderr, "latnetsearch: writing sweep row: %v\n", err)
		}
	}
	return 0
}

func parseStrategy(name string) (search.Strategy, error) {
	switch name {
	case "exhaustive":
		return search.Exhaustive, nil
	case "random":
		return search.Random, nil
	case "cbc":
		return search.CBC, nil
	case "fastcbc":
		return search.FastCBC, nil
	default:
		return 0, fmt.Errorf("latnetsearch: unknown -strategy %q: %w", name, latnet.ErrConfiguration)
	}
}

func resolveWeights(shape, file string, dim int) (weights.Weights, error) {
	if file != "" {
		return weights.JSONReader{}.Read(file)
	}
	gamma := make([]float64, dim)
	for i := range gamma {
		gamma[i] = 1
	}
	switch shape {
	case "product":
		return weights.NewProduct(gamma)
	case "order":
		gammaByOrder := make([]float64, dim+1)
		for i := range gammaByOrder {
			gammaByOrder[i] = 1
		}
		return weights.NewOrderDependent(gammaByOrder)
	case "pod":
		gammaByOrder := make([]float64, dim+1)
		for i := range gammaByOrder {
			gammaByOrder[i] = 1
		}
		return weights.NewPOD(gammaByOrder, gamma)
	default:
		return nil, fmt.Errorf("latnetsearch: -weights %q needs a -weights-file (no default table for this shape): %w", shape, latnet.ErrConfiguration)
	}
}

func parseModulusBits(modulus string) ([]int, error) {
	if modulus == "" {
		return nil, fmt.Errorf("latnetsearch: -construction=polynomial requires -modulus: %w", latnet.ErrConfiguration)
	}
	var bits []int
	for _, tok := range strings.Split(modulus, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		b, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("latnetsearch: invalid -modulus exponent %q: %w", tok, latnet.ErrConfiguration)
		}
		bits = append(bits, b)
	}
	return bits, nil
}

func buildNetMethod(constructionName, embedding, modulus string, m int) (construct.Method, error) {
	switch constructionName {
	case "sobol":
		return construct.NewSobol(m, m)
	case "polynomial":
		bits, err := parseModulusBits(modulus)
		if err != nil {
			return nil, err
		}
		return construct.NewPolynomial(m, bits)
	case "explicit":
		return construct.NewExplicit(m, m, embedding == "multilevel")
	default:
		return nil, fmt.Errorf("latnetsearch: unknown net -construction %q: %w", constructionName, latnet.ErrConfiguration)
	}
}

func runNetSearch(constructionName, embedding, modulus string, m, dim int, figureName string, q float64, w weights.Weights, strategy search.Strategy, ntries int, seed int64) (string, float64, error) {
	if figureName != "tvalue" {
		return "", 0, fmt.Errorf("latnetsearch: -kind=net only supports -figure=tvalue, got %q: %w", figureName, latnet.ErrConfiguration)
	}
	method, err := buildNetMethod(constructionName, embedding, modulus, m)
	if err != nil {
		return "", 0, err
	}
	fig, err := merit.NewTValueFigure(w, q)
	if err != nil {
		return "", 0, err
	}
	obs := search.NewMinimumObserver()
	values, meritValue, err := search.RunNetSearch(strategy, method, dim, fig, obs, search.RandomOpts{NBTries: ntries, Seed: seed})
	if err != nil {
		return "", 0, err
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = method.Format(v)
	}
	return strings.Join(parts, " | "), meritValue, nil
}

func buildLatticeMethod(constructionName, modulus string, m int) (lattice.Method, error) {
	switch constructionName {
	case "ordinary":
		n := new(big.Int).Lsh(big.NewInt(1), uint(m))
		return lattice.NewOrdinary(n)
	case "polynomial":
		bits, err := parseModulusBits(modulus)
		if err != nil {
			return nil, err
		}
		return lattice.NewPolynomial(bits)
	default:
		return nil, fmt.Errorf("latnetsearch: unknown lattice -construction %q: %w", constructionName, latnet.ErrConfiguration)
	}
}

func buildKernel(figureName string, alpha float64) (merit.Kernel, error) {
	switch figureName {
	case "palpha":
		return merit.NewPalphaKernel(int(alpha))
	case "balpha":
		return merit.NewBalphaKernel(int(alpha))
	case "iaalpha":
		return merit.NewIAalphaKernel(alpha, 1000)
	default:
		return nil, fmt.Errorf("latnetsearch: -kind=lattice only supports -figure=palpha|balpha|iaalpha, got %q: %w", figureName, latnet.ErrConfiguration)
	}
}

func runLatticeSearch(constructionName, modulus string, m, dim int, figureName string, alpha, q float64, w weights.Weights, strategy search.Strategy, ntries int, seed int64) (string, float64, error) {
	method, err := buildLatticeMethod(constructionName, modulus, m)
	if err != nil {
		return "", 0, err
	}
	kernel, err := buildKernel(figureName, alpha)
	if err != nil {
		return "", 0, err
	}
	n := method.N()
	if !n.IsInt64() || n.Int64() > 1<<20 {
		return "", 0, fmt.Errorf("latnetsearch: lattice size %s too large for this CLI: %w", n, latnet.ErrConfiguration)
	}
	fig, err := merit.NewKernelFigure(w, kernel, q, int(n.Int64()))
	if err != nil {
		return "", 0, err
	}
	obs := search.NewMinimumObserver()
	values, meritValue, err := search.RunLatticeSearch(strategy, method, dim, fig, obs, search.RandomOpts{NBTries: ntries, Seed: seed})
	if err != nil {
		return "", 0, err
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = method.Format(v)
	}
	return strings.Join(parts, " | "), meritValue, nil
}

// reportError maps an error kind to an exit code:
// 2 for configuration/parse errors, 3 for NoCandidate, 4 for an
// abort the user's own observer hook raised (not reachable by this CLI's
// default observer, which never aborts the whole search itself).
func reportError(err error) int {
	fmt.Fprintf(os.Stderr, "latnetsearch: %v\n", err)
	switch {
	case errors.Is(err, latnet.ErrNoCandidate):
		return 3
	case errors.Is(err, latnet.ErrAborted):
		return 4
	default:
		return 2
	}
}

// dumpTimings prints the wall-clock spent per search stage.
func dumpTimings() {
	for _, e := range measure.Timings.SnapshotAndReset() {
		fmt.Fprintf(os.Stderr, "timing: %-28s %v\n", e.Label, e.Dur)
	}
}

func report(output, kind, constructionName, strategyName string, dim, m int, description string, meritValue float64) {
	switch output {
	case "machine":
		fmt.Printf("%s %s %s %d %d %s %.12g\n", kind, constructionName, strategyName, dim, m, description, meritValue)
	default:
		fmt.Printf("kind=%s construction=%s strategy=%s dim=%d m=%d\n", kind, constructionName, strategyName, dim, m)
		fmt.Printf("winning generator:\n  %s\n", description)
		fmt.Printf("merit: %.12g\n", meritValue)
		if math.IsInf(meritValue, 1) {
			fmt.Println("warning: merit is +Inf, something upstream likely mis-scored every candidate")
		}
	}
}

type sweepRow struct {
	Kind         string  `json:"kind"`
	Construction string  `json:"construction"`
	Strategy     string  `json:"strategy"`
	Dim          int     `json:"dim"`
	M            int     `json:"m"`
	Merit        float64 `json:"merit"`
}

func appendSweepRow(path, kind, constructionName, strategyName string, dim, m int, meritValue float64) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	row := sweepRow{Kind: kind, Construction: constructionName, Strategy: strategyName, Dim: dim, M: m, Merit: meritValue}
	data, err := json.Marshal(row)
	if err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}
