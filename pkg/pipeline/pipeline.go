package pipeline

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"cleanviz/pkg/data"
)

// Step transforms a table into a new one. Steps must not modify their input.
type Step interface {
	Name() string
	Apply(t *data.Table) (*data.Table, error)
}

// Pipeline chains multiple cleaning steps.
type Pipeline struct {
	steps  []Step
	logger logrus.FieldLogger
}

func New(logger logrus.FieldLogger, steps ...Step) *Pipeline {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Pipeline{steps: steps, logger: logger}
}

// Run applies every step in order and returns the final table.
func (p *Pipeline) Run(t *data.Table) (*data.Table, error) {
	for _, step := range p.steps {
		out, err := step.Apply(t)
		if err != nil {
			return nil, errors.Wrapf(err, "step %s", step.Name())
		}
		s := Describe(out)
		p.logger.WithFields(logrus.Fields{
			"step":    step.Name(),
			"rows":    s.Rows,
			"columns": len(s.Columns),
			"missing": s.TotalMissing(),
		}).Debugln("cleaning step applied")
		t = out
	}
	return t, nil
}
