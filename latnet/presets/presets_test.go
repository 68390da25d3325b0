package presets

import (
	"testing"

	"latnetsearch/latnet/weights"
)

func TestNewConfigRejectsUnknownConstruction(t *testing.T) {
	w, _ := weights.NewProduct([]float64{1})
	if _, err := NewConfig("rank1", "unilevel", 4, 2, 1, w, 2, 2); err == nil {
		t.Fatal("expected NewConfig to reject an unknown construction kind")
	}
}

func TestNewConfigRejectsUnknownEmbedding(t *testing.T) {
	w, _ := weights.NewProduct([]float64{1})
	if _, err := NewConfig("sobol", "trilevel", 4, 2, 1, w, 2, 2); err == nil {
		t.Fatal("expected NewConfig to reject an unknown embedding kind")
	}
}

func TestNewConfigRejectsNonPositiveM(t *testing.T) {
	w, _ := weights.NewProduct([]float64{1})
	if _, err := NewConfig("sobol", "unilevel", 0, 2, 1, w, 2, 2); err == nil {
		t.Fatal("expected NewConfig to reject m <= 0")
	}
}

func TestNewConfigRejectsNilWeights(t *testing.T) {
	if _, err := NewConfig("sobol", "unilevel", 4, 2, 1, nil, 2, 2); err == nil {
		t.Fatal("expected NewConfig to reject nil weights")
	}
}

func TestNewConfigRejectsNormQBelowOne(t *testing.T) {
	w, _ := weights.NewProduct([]float64{1})
	if _, err := NewConfig("sobol", "unilevel", 4, 2, 1, w, 2, 0.5); err == nil {
		t.Fatal("expected NewConfig to reject normQ < 1")
	}
}

func TestNamedPresetsAreValid(t *testing.T) {
	presetFns := []func() (Config, error){
		SmallSobolUnilevel,
		MediumPolynomialMultilevel,
		ExplicitCBCBaseline,
	}
	for _, fn := range presetFns {
		cfg, err := fn()
		if err != nil {
			t.Fatalf("preset returned error: %v", err)
		}
		if cfg.Weights == nil {
			t.Fatal("preset returned a config with nil weights")
		}
		if cfg.Dim <= 0 || cfg.M <= 0 {
			t.Fatalf("preset returned an invalid shape: dim=%d m=%d", cfg.Dim, cfg.M)
		}
	}
}

func TestSmallSobolUnilevelShape(t *testing.T) {
	cfg, err := SmallSobolUnilevel()
	if err != nil {
		t.Fatalf("SmallSobolUnilevel: %v", err)
	}
	if cfg.Construction != "sobol" || cfg.Embedding != "unilevel" {
		t.Fatalf("got (%q,%q), want (sobol,unilevel)", cfg.Construction, cfg.Embedding)
	}
	if cfg.Dim != 3 {
		t.Fatalf("Dim = %d, want 3", cfg.Dim)
	}
}
