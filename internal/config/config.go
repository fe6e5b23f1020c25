// Package config centralizes runtime configuration: viper-bound flags and
// environment variables with HOUSEPRICER_ prefix, plus optional .env
// loading.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/UZRashid/MLG382-Project2/pkg/errors"
)

// Viper keys.
const (
	KeyDatasetPath = "dataset.path"
	KeyModelPath   = "model.path"
	KeyListenAddr  = "server.addr"
	KeyTestSize    = "training.test_size"
	KeySeed        = "training.seed"
	KeyGridSearch  = "training.grid_search"
	KeyNEstimators = "training.n_estimators"
	KeyMaxDepth    = "training.max_depth"
	KeyReportDir   = "report.dir"
	KeyLogLevel    = "logging.level"
)

// Config is the resolved runtime configuration.
type Config struct {
	DatasetPath string
	ModelPath   string
	ListenAddr  string
	TestSize    float64
	Seed        int
	GridSearch  bool
	NEstimators int
	MaxDepth    int
	ReportDir   string
	LogLevel    string
}

// SetDefaults registers the default values on the global viper instance.
func SetDefaults() {
	viper.SetDefault(KeyDatasetPath, "data.csv")
	viper.SetDefault(KeyModelPath, "model.gob")
	viper.SetDefault(KeyListenAddr, ":8080")
	viper.SetDefault(KeyTestSize, 0.2)
	viper.SetDefault(KeySeed, 42)
	viper.SetDefault(KeyGridSearch, false)
	viper.SetDefault(KeyNEstimators, 50)
	viper.SetDefault(KeyMaxDepth, 20)
	viper.SetDefault(KeyReportDir, "report")
	viper.SetDefault(KeyLogLevel, "info")
}

// Init wires environment lookup. A .env file in the working directory is
// loaded first so its values are visible to viper; a missing file is fine.
func Init() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "config: load .env")
	}

	viper.SetEnvPrefix("HOUSEPRICER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	return nil
}

// Load resolves the configuration from viper and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		DatasetPath: viper.GetString(KeyDatasetPath),
		ModelPath:   viper.GetString(KeyModelPath),
		ListenAddr:  viper.GetString(KeyListenAddr),
		TestSize:    viper.GetFloat64(KeyTestSize),
		Seed:        viper.GetInt(KeySeed),
		GridSearch:  viper.GetBool(KeyGridSearch),
		NEstimators: viper.GetInt(KeyNEstimators),
		MaxDepth:    viper.GetInt(KeyMaxDepth),
		ReportDir:   viper.GetString(KeyReportDir),
		LogLevel:    viper.GetString(KeyLogLevel),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration's value ranges.
func (c *Config) Validate() error {
	if c.TestSize <= 0 || c.TestSize >= 1 {
		return errors.NewValidationError("training.test_size", "must be in (0, 1)", c.TestSize)
	}
	if c.NEstimators < 1 {
		return errors.NewValidationError("training.n_estimators", "must be at least 1", c.NEstimators)
	}
	if c.DatasetPath == "" {
		return errors.NewValidationError("dataset.path", "must not be empty", c.DatasetPath)
	}
	return nil
}
