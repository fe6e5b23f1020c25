// Package main contains the housepricer CLI commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/UZRashid/MLG382-Project2/internal/config"
	"github.com/UZRashid/MLG382-Project2/pkg/log"
)

var rootCmd = &cobra.Command{
	Use:   "housepricer",
	Short: "House price regression pipeline",
	Long: `housepricer trains a random-forest regressor on housing sales data and
serves price predictions through a small web dashboard.

Configuration comes from flags, HOUSEPRICER_* environment variables and an
optional .env file in the working directory.`,
	PersistentPreRunE: initConfig,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("data", "data.csv", "path to the raw housing CSV")

	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyDatasetPath, rootCmd.PersistentFlags().Lookup("data"))

	rootCmd.AddCommand(trainCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(reportCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.GetLogger().Info("interrupt received, shutting down")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	config.SetDefaults()
	if err := config.Init(); err != nil {
		return err
	}

	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	log.SetLogger(zl)
	log.SetLevel(log.ToLevel(viper.GetString(config.KeyLogLevel)))
	return nil
}
