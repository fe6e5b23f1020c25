package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/UZRashid/MLG382-Project2/internal/config"
	"github.com/UZRashid/MLG382-Project2/internal/training"
)

func trainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the price model",
		Long: `Prepare the housing data, fit a random-forest regressor and report
mean absolute error on the train and test partitions.

Examples:
  housepricer train                         # fit with the configured parameters
  housepricer train --grid-search           # 5-fold cross-validated grid search
  housepricer train --test-size 0.3         # hold out 30% for evaluation
  housepricer train --model-out model.gob   # persist the fitted model`,
		RunE: runTrain,
	}

	cmd.Flags().Bool("grid-search", false, "Select n_estimators and max_depth by cross-validated grid search")
	cmd.Flags().Float64("test-size", 0.2, "Fraction of rows held out for evaluation")
	cmd.Flags().Int("seed", 42, "Random seed for splitting and tree growth")
	cmd.Flags().Int("n-estimators", 50, "Number of trees (ignored with --grid-search)")
	cmd.Flags().Int("max-depth", 20, "Maximum tree depth (ignored with --grid-search)")
	cmd.Flags().String("model-out", "model.gob", "Path for the saved model artifact (empty to skip saving)")

	_ = viper.BindPFlag(config.KeyGridSearch, cmd.Flags().Lookup("grid-search"))
	_ = viper.BindPFlag(config.KeyTestSize, cmd.Flags().Lookup("test-size"))
	_ = viper.BindPFlag(config.KeySeed, cmd.Flags().Lookup("seed"))
	_ = viper.BindPFlag(config.KeyNEstimators, cmd.Flags().Lookup("n-estimators"))
	_ = viper.BindPFlag(config.KeyMaxDepth, cmd.Flags().Lookup("max-depth"))
	_ = viper.BindPFlag(config.KeyModelPath, cmd.Flags().Lookup("model-out"))

	return cmd
}

func runTrain(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	result, err := training.Run(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rows: %d (train %d / test %d)\n",
		result.PreparedRows, result.TrainRows, result.TestRows)
	fmt.Fprintf(out, "parameters: n_estimators=%v max_depth=%v\n",
		result.BestParams["n_estimators"], result.BestParams["max_depth"])
	fmt.Fprintf(out, "train MAE: %.2f\n", result.TrainMAE)
	fmt.Fprintf(out, "test MAE:  %.2f\n", result.TestMAE)
	fmt.Fprintf(out, "test R2:   %.4f\n", result.TestR2)

	if cfg.ModelPath != "" {
		if err := training.Save(result, cfg.ModelPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "model saved to %s\n", cfg.ModelPath)
	}
	return nil
}
