package plotting

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Dataset is any source of named numeric columns.
type Dataset interface {
	Name() string
	Column(name string) ([]float64, error)
}

// ComparisonPlotter draws before/after cleaning histograms per column.
type ComparisonPlotter struct {
	display Displayer
	opts    Options
	logger  logrus.FieldLogger
}

func NewComparisonPlotter(display Displayer, opts Options, logger logrus.FieldLogger) *ComparisonPlotter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ComparisonPlotter{display: display, opts: opts, logger: logger}
}

// Compare shows one figure per column, in order. Each column is looked up in
// both datasets when it is reached; the first lookup, render or display error
// stops the run and no figure is shown for that column.
func (c *ComparisonPlotter) Compare(columns []string, before, after Dataset) error {
	for _, name := range columns {
		fig, err := c.figure(name, before, after)
		if err != nil {
			return err
		}
		if err := c.display.Show(fig); err != nil {
			return errors.Wrapf(err, "display %q", name)
		}
		c.logger.WithFields(logrus.Fields{
			"column": name,
			"before": len(fig.Panels[0].Values),
			"after":  len(fig.Panels[1].Values),
		}).Debugln("comparison shown")
	}
	return nil
}

func (c *ComparisonPlotter) figure(name string, before, after Dataset) (*Figure, error) {
	bv, err := before.Column(name)
	if err != nil {
		return nil, errors.Wrap(err, "before cleaning")
	}
	av, err := after.Column(name)
	if err != nil {
		return nil, errors.Wrap(err, "after cleaning")
	}
	fig, err := BuildFigure(name, bv, av, c.opts)
	if err != nil {
		return nil, errors.Wrapf(err, "build figure %q", name)
	}
	return fig, nil
}
