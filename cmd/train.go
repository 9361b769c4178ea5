package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	coremetrics "github.com/kilianp07/quote-genie/core/metrics"
	"github.com/kilianp07/quote-genie/core/training"
	"github.com/kilianp07/quote-genie/infra/logger"
	"github.com/kilianp07/quote-genie/pkg/export"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the win-probability and market-rate models",
	RunE:  runTrain,
}

func init() {
	f := trainCmd.Flags()
	f.String("data", "", "historical dataset (.csv or .json)")
	f.String("models", "", "directory receiving the model artifacts")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, _ []string) error {
	tc := cfg.Training
	if v, _ := cmd.Flags().GetString("data"); v != "" {
		tc.Data = v
	}
	if v, _ := cmd.Flags().GetString("models"); v != "" {
		tc.ModelDir = v
	}

	recs, err := export.ReadFile(tc.Data)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}
	log := logger.New("train")
	models, rep, err := training.NewTrainer(tc.Trainer(), sink, log).Train(cmd.Context(), recs)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}
	if err := training.Save(tc.ModelDir, models); err != nil {
		return fmt.Errorf("save models: %w", err)
	}
	log.Infof("saved models to %s: accuracy=%.3f auc=%.3f market_rmse=%.2f",
		tc.ModelDir, rep.Accuracy, rep.AUC, rep.MarketRMSE)
	return nil
}
