package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gonum.org/v1/plot/vg"

	"cleanviz/internal/config"
	"cleanviz/internal/log"
	"cleanviz/pkg/data"
	"cleanviz/pkg/dataprep"
	"cleanviz/pkg/pipeline"
	"cleanviz/pkg/plotting"
)

//
// ---------------------- CLI FLAGS DOCUMENTATION ----------------------
//
// --before         : CSV with the data before cleaning (required)
// --after          : CSV with the cleaned data. When empty the before data is
//                    cleaned in-process (missing values, duplicates, outliers)
// --cleaned-out    : Save the in-process cleaned data to this CSV
// --columns        : Comma separated columns to compare, in display order
// --output-dir     : Directory receiving one image per column. Default = figures
// --format         : png, jpg or svg. Default = png
// --width/--height : Figure size in inches. Default = 8x4
// --missing-thresh : Drop columns with > threshold fraction missing. Default = 0.2
// --log-level      : trace, debug, info, warn, error
// --config         : YAML config file; CLEANVIZ_* env vars override it
//
// Example:
//   go run ./cmd/compare --before Employee.csv --columns Age,Salary
//
// ---------------------------------------------------------------------
//

func main() {
	cfg, ok, err := loadConfig(os.Args[0], os.Args[1:])
	if err != nil {
		logrus.WithError(err).Fatalln("⛔ invalid configuration")
	}
	if !ok {
		return
	}

	logger := log.NewLogger(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.DisableTimestamp)
	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatalln("⛔ comparison failed")
	}
}

// loadConfig resolves the configuration. ok is false when only usage was requested.
func loadConfig(name string, args []string) (cfg config.Cfg, ok bool, err error) {
	cfg, err = config.Load(config.NewFlagSet(name), args)
	if errors.Is(err, pflag.ErrHelp) {
		return cfg, false, nil
	}
	return cfg, err == nil, err
}

func run(cfg config.Cfg, logger *logrus.Logger) error {
	before, err := data.LoadCSV(cfg.Before)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"path": cfg.Before, "rows": before.Rows(), "columns": len(before.Headers())}).Infoln("loaded raw data")

	after, err := cleaned(cfg, before, logger)
	if err != nil {
		return err
	}

	display, err := plotting.NewFileDisplayer(cfg.OutputDir, cfg.Format, logger)
	if err != nil {
		return err
	}
	opts := plotting.DefaultOptions()
	opts.Width = vg.Length(cfg.Figure.Width) * vg.Inch
	opts.Height = vg.Length(cfg.Figure.Height) * vg.Inch

	if len(cfg.Columns) == 0 {
		logger.Warnln("no columns requested, nothing to compare")
	}
	err = plotting.NewComparisonPlotter(display, opts, logger).Compare(cfg.Columns, before, after)
	logger.WithField("figures", display.Shown()).Infoln("comparison finished")
	return err
}

// cleaned loads the cleaned dataset, or derives it from before when no path is configured.
func cleaned(cfg config.Cfg, before *data.Table, logger *logrus.Logger) (*data.Table, error) {
	if cfg.After != "" {
		after, err := data.LoadCSV(cfg.After)
		if err != nil {
			return nil, err
		}
		logger.WithFields(logrus.Fields{"path": cfg.After, "rows": after.Rows()}).Infoln("loaded cleaned data")
		return after, nil
	}

	steps := []pipeline.Step{dataprep.MissingValues{Threshold: cfg.Clean.MissingThreshold, Logger: logger}}
	if cfg.Clean.DropDuplicates {
		steps = append(steps, dataprep.DropDuplicates{})
	}
	if cfg.Clean.ClipLower > 0 || cfg.Clean.ClipUpper < 100 {
		steps = append(steps, dataprep.ClipOutliers{Lower: cfg.Clean.ClipLower, Upper: cfg.Clean.ClipUpper})
	}
	after, err := pipeline.New(logger, steps...).Run(before.WithName(before.Name() + "_cleaned"))
	if err != nil {
		return nil, errors.Wrap(err, "clean data")
	}

	if cfg.CleanedOut != "" {
		file, err := os.Create(cfg.CleanedOut)
		if err != nil {
			return nil, errors.Wrap(err, "create cleaned output")
		}
		if err := data.WriteCSV(file, after); err != nil {
			file.Close()
			return nil, err
		}
		if err := file.Close(); err != nil {
			return nil, errors.Wrap(err, "close cleaned output")
		}
		logger.WithField("path", cfg.CleanedOut).Infoln("cleaned data saved")
	}
	return after, nil
}
