package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/UZRashid/MLG382-Project2/ensemble"
	"github.com/UZRashid/MLG382-Project2/internal/config"
	"github.com/UZRashid/MLG382-Project2/internal/server"
	"github.com/UZRashid/MLG382-Project2/internal/training"
	"github.com/UZRashid/MLG382-Project2/pkg/log"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the prediction dashboard",
		Long: `Start the web dashboard. A saved model artifact is loaded when present;
otherwise a model is trained in-process from the configured dataset first.

Examples:
  housepricer serve                      # load model.gob, or train if absent
  housepricer serve --addr :9000         # listen on a different port
  housepricer serve --model ""           # always train in-process`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().String("model", "model.gob", "Path to a saved model artifact")

	_ = viper.BindPFlag(config.KeyListenAddr, cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag(config.KeyModelPath, cmd.Flags().Lookup("model"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := log.GetLoggerWithName("serve")

	forest, err := loadOrTrain(cfg, logger)
	if err != nil {
		return err
	}

	srv, err := server.New(forest)
	if err != nil {
		return err
	}
	return srv.Run(cmd.Context(), cfg.ListenAddr)
}

func loadOrTrain(cfg *config.Config, logger log.Logger) (*ensemble.RandomForestRegressor, error) {
	if cfg.ModelPath != "" {
		if _, err := os.Stat(cfg.ModelPath); err == nil {
			forest, err := training.LoadForest(cfg.ModelPath)
			if err != nil {
				return nil, err
			}
			logger.Info("model loaded", "path", cfg.ModelPath, "trees", len(forest.Trees))
			return forest, nil
		}
		logger.Info("no model artifact found, training in-process", "path", cfg.ModelPath)
	}

	result, err := training.Run(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("in-process training done",
		"train_mae", result.TrainMAE,
		"test_mae", result.TestMAE)
	return result.Forest, nil
}
