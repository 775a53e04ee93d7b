package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/randomtoy/arcana-go/internal/adapters/catalog"
	"github.com/randomtoy/arcana-go/internal/adapters/spreads"
	"github.com/randomtoy/arcana-go/internal/app"
	"github.com/randomtoy/arcana-go/internal/engine"
)

var (
	computeInputPath string
	computeRulesPath string
)

// computeInput mirrors the HTTP influence request body for offline use.
type computeInput struct {
	ReadingID     string             `json:"reading_id"`
	SpreadType    string             `json:"spread_type"`
	Positions     []computePosition  `json:"positions"`
	RuleOverrides map[string]float64 `json:"rule_overrides,omitempty"`
}

type computePosition struct {
	PositionID  string  `json:"position_id"`
	CardID      string  `json:"card_id"`
	Orientation string  `json:"orientation"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute influences for a reading from JSON on stdin or a file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCompute(cmd.OutOrStdout())
	},
}

func init() {
	computeCmd.Flags().StringVarP(&computeInputPath, "input", "i", "-", "reading JSON file (- for stdin)")
	computeCmd.Flags().StringVar(&computeRulesPath, "rules", "", "YAML file with rule parameter overrides")
}

func runCompute(out io.Writer) error {
	var raw []byte
	var err error
	if computeInputPath == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(computeInputPath)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var in computeInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}

	ruleCfg := engine.DefaultConfig()
	if computeRulesPath != "" {
		ruleCfg, err = engine.LoadConfigFile(computeRulesPath)
		if err != nil {
			return err
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	eng, err := engine.New(ruleCfg, logger)
	if err != nil {
		return err
	}

	svc := app.NewReadingService(
		catalog.NewEmbeddedStore(),
		spreads.NewEmbeddedStore(),
		eng,
		nil, // deterministic renderer only, no network
		nil,
		stdRNG{},
		logger,
	)

	positions := make([]app.PositionInput, len(in.Positions))
	for i, p := range in.Positions {
		positions[i] = app.PositionInput{
			PositionID:  p.PositionID,
			CardID:      p.CardID,
			Orientation: p.Orientation,
			X:           p.X,
			Y:           p.Y,
		}
	}

	result, err := svc.Compute(context.Background(), app.ComputeRequest{
		ReadingID:     in.ReadingID,
		SpreadType:    in.SpreadType,
		Positions:     positions,
		RuleOverrides: in.RuleOverrides,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
