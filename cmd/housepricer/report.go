package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/UZRashid/MLG382-Project2/internal/config"
	"github.com/UZRashid/MLG382-Project2/internal/dataset"
	"github.com/UZRashid/MLG382-Project2/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the exploratory data report",
		Long: `Render the price histogram, the living-area scatter plot and a text
summary of the prepared data into the report directory.`,
		RunE: runReport,
	}

	cmd.Flags().String("out", "report", "Output directory for the report artifacts")
	_ = viper.BindPFlag(config.KeyReportDir, cmd.Flags().Lookup("out"))

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	raw, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return err
	}
	prepared, err := dataset.Prepare(raw)
	if err != nil {
		return err
	}

	if err := report.Generate(raw, prepared, cfg.ReportDir); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", cfg.ReportDir)
	return nil
}
