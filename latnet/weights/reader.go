package weights

import (
	"encoding/json"
	"fmt"
	"os"

	"latnetsearch/latnet"
)

// Reader loads a Weights value from a file. The on-disk format is out of
// scope for this module's core; this is the one concrete implementation the
// CLI needs to exercise the interface end-to-end.
type Reader interface {
	Read(path string) (Weights, error)
}

// fileSpec mirrors the JSON shape read by JSONReader: a "shape" tag plus
// the fields relevant to that shape, decoded into a permissive struct and
// then checked against that shape's invariants.
type fileSpec struct {
	Shape        string             `json:"shape"`
	Gamma        []float64          `json:"gamma,omitempty"`
	GammaByOrder []float64          `json:"gamma_by_order,omitempty"`
	Projections  map[string]float64 `json:"projections,omitempty"`
	Combined     []fileSpec         `json:"combined,omitempty"`
}

// JSONReader reads a weights file in the shape described above.
type JSONReader struct{}

// Read parses path as a weights file and constructs the matching Weights
// shape.
func (JSONReader) Read(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("weights: reading %s: %w", path, err)
	}
	var spec fileSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("weights: parsing %s: %w", path, err)
	}
	return buildFromSpec(spec)
}

func buildFromSpec(spec fileSpec) (Weights, error) {
	switch spec.Shape {
	case "product":
		return NewProduct(spec.Gamma)
	case "order":
		return NewOrderDependent(spec.GammaByOrder)
	case "pod":
		return NewPOD(spec.GammaByOrder, spec.Gamma)
	case "projdep":
		return NewProjectionDependent(canonicalizeProjections(spec.Projections))
	case "combined":
		parts := make([]Weights, 0, len(spec.Combined))
		for _, sub := range spec.Combined {
			w, err := buildFromSpec(sub)
			if err != nil {
				return nil, err
			}
			parts = append(parts, w)
		}
		return NewCombined(parts)
	default:
		return nil, fmt.Errorf("weights: unrecognized shape %q: %w", spec.Shape, latnet.ErrConfiguration)
	}
}

// canonicalizeProjections re-keys a JSON object whose keys are
// comma-separated coordinate lists (e.g. "0,2,3") into the canonical sorted
// form used internally, so authors can list coordinates in any order.
func canonicalizeProjections(raw map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		out[canonicalKeyString(k)] = v
	}
	return out
}

func canonicalKeyString(s string) string {
	var nums []int
	cur := 0
	has := false
	for _, r := range s + "," {
		if r >= '0' && r <= '9' {
			cur = cur*10 + int(r-'0')
			has = true
			continue
		}
		if has {
			nums = append(nums, cur)
			cur, has = 0, false
		}
	}
	return Key(nums)
}
