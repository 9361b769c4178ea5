package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	coremetrics "github.com/kilianp07/quote-genie/core/metrics"
	"github.com/kilianp07/quote-genie/core/simulation"
	"github.com/kilianp07/quote-genie/infra/logger"
	"github.com/kilianp07/quote-genie/pkg/export"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the synthetic historical quote dataset",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.Int("samples", 0, "number of quotes to generate (default from config)")
	f.StringP("output", "o", "", "output file, format chosen by extension (.csv, .json, .xlsx)")
	f.Uint64("seed", 0, "random seed, 0 for a random run")
	f.Int("workers", 0, "parallel generation workers")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	gc := cfg.Generator
	f := cmd.Flags()
	if f.Changed("samples") {
		gc.Samples, _ = f.GetInt("samples")
	}
	if f.Changed("output") {
		gc.Output, _ = f.GetString("output")
	}
	if f.Changed("seed") {
		gc.Seed, _ = f.GetUint64("seed")
	}
	if f.Changed("workers") {
		gc.Workers, _ = f.GetInt("workers")
	}
	if err := gc.Validate(); err != nil {
		return err
	}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}
	log := logger.New("generate")
	recs, err := simulation.NewAssembler(gc.Assembler(), sink, log).Generate(cmd.Context(), gc.Samples)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if err := export.WriteFile(gc.Output, recs); err != nil {
		return fmt.Errorf("write %s: %w", gc.Output, err)
	}
	log.Infof("wrote %d quotes to %s", len(recs), gc.Output)
	return nil
}
