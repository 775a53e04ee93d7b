package engine_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/randomtoy/arcana-go/internal/domain"
	"github.com/randomtoy/arcana-go/internal/engine"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := engine.DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}
}

func TestConfig_WithOverrides(t *testing.T) {
	base := engine.DefaultConfig()

	got, err := base.WithOverrides(map[string]float64{
		"major_dominance.multiplier":    2.0,
		"conflict_resolution.dampening": 0.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MajorDominance.Multiplier != 2.0 {
		t.Errorf("multiplier = %v, want 2.0", got.MajorDominance.Multiplier)
	}
	if got.Conflict.Dampening != 0.5 {
		t.Errorf("dampening = %v, want 0.5", got.Conflict.Dampening)
	}
	if base.MajorDominance.Multiplier != 1.5 {
		t.Errorf("base config was mutated: multiplier = %v", base.MajorDominance.Multiplier)
	}
}

func TestConfig_WithOverrides_Errors(t *testing.T) {
	base := engine.DefaultConfig()

	cases := []struct {
		name      string
		overrides map[string]float64
		wantParam string
	}{
		{
			name:      "unknown parameter",
			overrides: map[string]float64{"adjacency.bogus": 1},
			wantParam: "adjacency.bogus",
		},
		{
			name:      "out of range",
			overrides: map[string]float64{"conflict_resolution.dampening": 1.5},
			wantParam: "conflict_resolution.dampening",
		},
		{
			name:      "negative boost",
			overrides: map[string]float64{"suit_predominance.pair_boost": -0.1},
			wantParam: "suit_predominance.pair_boost",
		},
		{
			name: "limits out of order",
			overrides: map[string]float64{
				"adjacency.diagonal_limit": 0.5,
			},
			wantParam: "adjacency",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := base.WithOverrides(tc.overrides)
			if !errors.Is(err, domain.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			var cerr *domain.ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected ConfigError, got %T", err)
			}
			if cerr.Param != tc.wantParam {
				t.Errorf("param = %q, want %q", cerr.Param, tc.wantParam)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := "major_dominance:\n  enabled: true\n  multiplier: 1.8\nconflict_resolution:\n  enabled: false\n  threshold: 0.5\n  dampening: 0.7\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := engine.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MajorDominance.Multiplier != 1.8 {
		t.Errorf("multiplier = %v, want 1.8 from file", cfg.MajorDominance.Multiplier)
	}
	if cfg.Conflict.Enabled {
		t.Error("conflict rule should be disabled by the file")
	}
	// Untouched sections keep their defaults.
	if cfg.Reversal.StabilityReduction != 0.30 {
		t.Errorf("stability_reduction = %v, want default 0.30", cfg.Reversal.StabilityReduction)
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	if _, err := engine.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("major_dominance: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.LoadConfigFile(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("major_dominance:\n  multiplier: -2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.LoadConfigFile(invalid); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for out-of-range value, got %v", err)
	}
}

func TestEngine_New_RejectsInvalidConfig(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Normalization.SharedThemeMultiplier = 0

	if _, err := engine.New(cfg, nil); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestCompute_DisabledRule(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Reversal.Enabled = false
	eng, err := engine.New(cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := eng.Compute(reading(
		placed(at("a", 0, 0), testMinor("two_of_cups", domain.SuitCups, 2, 0.3), domain.Upright),
		placed(at("b", 1, 0), testMinor("five_of_cups", domain.SuitCups, 5, -0.3), domain.Reversed),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range result.Cards {
		if got := factorsMatching(c, "unsettles stability"); len(got) != 0 {
			t.Errorf("card %s: reversal factors present with rule disabled", c.CardID)
		}
	}
}
