package pipeline

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/plsgo/pkg/errors"
)

// Config holds every knob of the analysis, loadable from YAML or set by
// flags. Nothing is hardcoded: input location, fold structure, permutation
// count, seeds and output formats are all here.
type Config struct {
	// InputPath is the CSV file with one ID column, one group column and
	// numeric feature columns. Empty when the caller supplies a Table
	// directly.
	InputPath string `yaml:"input_path"`

	// IDColumn and GroupColumn name the metadata columns of the input.
	IDColumn    string `yaml:"id_column"`
	GroupColumn string `yaml:"group_column"`

	// OutputDir receives every figure and the saved model bundle.
	OutputDir string `yaml:"output_dir"`

	// MaxComponents bounds the component search range [1, MaxComponents];
	// the data caps it further at min(n_samples-1, n_features).
	MaxComponents int `yaml:"max_components"`

	// Folds is the stratified cross-validation fold count.
	Folds int `yaml:"folds"`

	// Permutations is the null-model iteration count of the significance
	// test.
	Permutations int `yaml:"permutations"`

	// FoldSeed seeds the fold assignment, making every evaluation sweep
	// reproducible.
	FoldSeed int `yaml:"fold_seed"`

	// PermutationSeed seeds the label shuffles, making the null
	// distribution reproducible. A negative value draws from the clock for
	// truly random shuffles.
	PermutationSeed int64 `yaml:"permutation_seed"`

	// Workers is the worker count of the permutation pool. Zero uses all
	// CPUs; 1 runs the iterations sequentially.
	Workers int `yaml:"workers"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// PlotFormats are the file formats every figure is saved in.
	PlotFormats []string `yaml:"plot_formats"`

	// SaveBundle writes the fitted models to OutputDir when set.
	SaveBundle bool `yaml:"save_bundle"`
}

// DefaultConfig matches the original analysis script: 5 stratified folds, 100
// permutations, components searched up to 10, seeded folds, png+svg figures.
func DefaultConfig() Config {
	return Config{
		IDColumn:        "sample",
		GroupColumn:     "group",
		OutputDir:       "plsda_output",
		MaxComponents:   10,
		Folds:           5,
		Permutations:    100,
		FoldSeed:        42,
		PermutationSeed: -1,
		Workers:         1,
		LogLevel:        "info",
		PlotFormats:     []string{"png", "svg"},
	}
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.NewModelError("LoadConfig", "cannot read config file", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.NewModelError("LoadConfig", "cannot parse config file", err)
	}
	return cfg, nil
}

// Validate rejects nonsense before any data is read.
func (c Config) Validate() error {
	if c.MaxComponents < 1 {
		return errors.NewValidationError("max_components", "must be at least 1", c.MaxComponents)
	}
	if c.Folds < 2 {
		return errors.NewValidationError("folds", "must be at least 2", c.Folds)
	}
	if c.Permutations < 1 {
		return errors.NewValidationError("permutations", "must be at least 1", c.Permutations)
	}
	if c.GroupColumn == "" {
		return errors.NewValidationError("group_column", "must be named", c.GroupColumn)
	}
	if c.IDColumn == "" {
		return errors.NewValidationError("id_column", "must be named", c.IDColumn)
	}
	if len(c.PlotFormats) == 0 {
		return errors.NewValidationError("plot_formats", "need at least one format", c.PlotFormats)
	}
	return nil
}
