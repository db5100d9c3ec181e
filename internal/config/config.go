package config

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"cleanviz/pkg/plotting"
)

type Figure struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

type Clean struct {
	MissingThreshold float64 `mapstructure:"missing_threshold"`
	DropDuplicates   bool    `mapstructure:"drop_duplicates"`
	ClipLower        float64 `mapstructure:"clip_lower"`
	ClipUpper        float64 `mapstructure:"clip_upper"`
}

type Logger struct {
	Level            string `mapstructure:"level"`
	Format           string `mapstructure:"format"`
	DisableTimestamp bool   `mapstructure:"disable_timestamp"`
}

type Cfg struct {
	Before     string   `mapstructure:"before"`
	After      string   `mapstructure:"after"`
	CleanedOut string   `mapstructure:"cleaned_out"`
	Columns    []string `mapstructure:"columns"`
	OutputDir  string   `mapstructure:"output_dir"`
	Format     string   `mapstructure:"format"`
	Figure     Figure   `mapstructure:"figure"`
	Clean      Clean    `mapstructure:"clean"`
	Logger     Logger   `mapstructure:"logger"`
}

var defaults = map[string]interface{}{
	"before":                   "",
	"after":                    "",
	"cleaned_out":              "",
	"columns":                  []string{},
	"output_dir":               "figures",
	"format":                   "png",
	"figure.width":             8.0,
	"figure.height":            4.0,
	"clean.missing_threshold":  0.2,
	"clean.drop_duplicates":    true,
	"clean.clip_lower":         0.0,
	"clean.clip_upper":         100.0,
	"logger.level":             "info",
	"logger.format":            "text",
	"logger.disable_timestamp": false,
}

// flag name -> config key
var flagKeys = map[string]string{
	"before":         "before",
	"after":          "after",
	"cleaned-out":    "cleaned_out",
	"columns":        "columns",
	"output-dir":     "output_dir",
	"format":         "format",
	"width":          "figure.width",
	"height":         "figure.height",
	"missing-thresh": "clean.missing_threshold",
	"log-level":      "logger.level",
}

// NewFlagSet declares the command line flags understood by Load.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "Path to a config file (default ./cleanviz.yaml or ./configs/cleanviz.yaml)")
	fs.String("before", "", "CSV with the data before cleaning")
	fs.String("after", "", "CSV with the cleaned data; cleaned in-process when empty")
	fs.String("cleaned-out", "", "Write the in-process cleaned data to this CSV")
	fs.StringSlice("columns", nil, "Columns to compare, in order")
	fs.String("output-dir", "figures", "Directory for rendered figures")
	fs.String("format", "png", "Figure format: png, jpg or svg")
	fs.Float64("width", 8, "Figure width in inches")
	fs.Float64("height", 4, "Figure height in inches, must be half the width")
	fs.Float64("missing-thresh", 0.2, "Drop columns with more than this fraction missing")
	fs.String("log-level", "info", "Log level")
	return fs
}

// Load parses args into fs and resolves the configuration from flags,
// CLEANVIZ_* environment variables, the config file and defaults, in that order.
func Load(fs *pflag.FlagSet, args []string) (Cfg, error) {
	var cfg Cfg
	if err := fs.Parse(args); err != nil {
		return cfg, errors.Wrap(err, "parse flags")
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return cfg, errors.Wrapf(err, "bind flag %s", name)
		}
	}
	v.SetEnvPrefix("CLEANVIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, errors.Wrap(err, "read config file")
		}
	} else {
		v.SetConfigName("cleanviz")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs/")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return cfg, errors.Wrap(err, "read config file")
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "unmarshal config")
	}
	return cfg, cfg.Validate()
}

// Validate checks the values Load cannot type-check.
func (c Cfg) Validate() error {
	switch {
	case c.Before == "":
		return errors.New("config: before dataset path is required")
	case c.Figure.Width <= 0 || c.Figure.Height <= 0:
		return errors.Errorf("config: figure size %gx%g must be positive", c.Figure.Width, c.Figure.Height)
	case math.Abs(c.Figure.Width-2*c.Figure.Height) > 1e-9:
		return errors.Errorf("config: figure size %gx%g must have a 2:1 aspect", c.Figure.Width, c.Figure.Height)
	case !plotting.SupportedFormat(c.Format):
		return errors.Errorf("config: unsupported format %q", c.Format)
	case c.Clean.MissingThreshold < 0 || c.Clean.MissingThreshold > 1:
		return errors.Errorf("config: missing threshold %g outside [0, 1]", c.Clean.MissingThreshold)
	case c.Clean.ClipLower < 0 || c.Clean.ClipUpper > 100 || c.Clean.ClipLower >= c.Clean.ClipUpper:
		return errors.Errorf("config: clip percentiles %g..%g invalid", c.Clean.ClipLower, c.Clean.ClipUpper)
	}
	return nil
}
