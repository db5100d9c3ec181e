package plotting

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"gotest.tools/v3/assert"

	"cleanviz/pkg/data"
)

// recorder keeps every figure it is shown.
type recorder struct {
	figs []*Figure
}

func (r *recorder) Show(fig *Figure) error {
	r.figs = append(r.figs, fig)
	return nil
}

func quiet() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}

func table(t *testing.T, name string, headers []string, cols ...[]float64) *data.Table {
	t.Helper()
	tbl, err := data.NewTable(name, headers, cols)
	assert.NilError(t, err)
	return tbl
}

func TestCompareSingleColumn(t *testing.T) {
	before := table(t, "data", []string{"age"}, []float64{1, 2, 2, 3})
	after := table(t, "data_cleaned", []string{"age"}, []float64{2, 2, 3})

	rec := &recorder{}
	err := NewComparisonPlotter(rec, DefaultOptions(), quiet()).Compare([]string{"age"}, before, after)
	assert.NilError(t, err)
	assert.Equal(t, len(rec.figs), 1)

	fig := rec.figs[0]
	assert.Equal(t, fig.Column, "age")
	assert.Equal(t, len(fig.Panels), 2)
	assert.Equal(t, fig.Panels[0].Title, "age Before Cleaning")
	assert.Equal(t, fig.Panels[1].Title, "age After Cleaning")
	assert.DeepEqual(t, fig.Panels[0].Values, []float64{1, 2, 2, 3})
	assert.DeepEqual(t, fig.Panels[1].Values, []float64{2, 2, 3})
	assert.Equal(t, fig.Panels[0].Bins, 4)
	assert.Equal(t, len(fig.Panels[0].Density), 200)
	assert.Equal(t, fig.Width, 2*fig.Height)
}

func TestComparePreservesOrder(t *testing.T) {
	headers := []string{"age", "income", "score"}
	before := table(t, "data", headers, []float64{1, 2}, []float64{3, 4}, []float64{5, 6})
	after := table(t, "data_cleaned", headers, []float64{1}, []float64{3}, []float64{5})

	rec := &recorder{}
	columns := []string{"score", "age", "income"}
	assert.NilError(t, NewComparisonPlotter(rec, DefaultOptions(), quiet()).Compare(columns, before, after))
	assert.Equal(t, len(rec.figs), len(columns))
	for i, fig := range rec.figs {
		assert.Equal(t, fig.Column, columns[i])
		assert.Equal(t, fig.Panels[0].Title, columns[i]+" Before Cleaning")
		assert.Equal(t, fig.Panels[1].Title, columns[i]+" After Cleaning")
	}
}

func TestCompareEmptyColumnsIsNoop(t *testing.T) {
	before := table(t, "data", []string{"age"}, []float64{1})
	rec := &recorder{}
	assert.NilError(t, NewComparisonPlotter(rec, DefaultOptions(), quiet()).Compare(nil, before, before))
	assert.Equal(t, len(rec.figs), 0)
}

func TestCompareStopsAtMissingColumn(t *testing.T) {
	before := table(t, "data", []string{"age", "income"}, []float64{1, 2}, []float64{3, 4})
	after := table(t, "data_cleaned", []string{"age"}, []float64{1, 2})

	rec := &recorder{}
	err := NewComparisonPlotter(rec, DefaultOptions(), quiet()).
		Compare([]string{"age", "income", "age"}, before, after)

	assert.Assert(t, errors.Is(err, data.ErrMissingColumn))
	var mc *data.MissingColumnError
	assert.Assert(t, errors.As(err, &mc))
	assert.Equal(t, mc.Column, "income")
	assert.Equal(t, mc.Dataset, "data_cleaned")
	assert.ErrorContains(t, err, "after cleaning")

	// figure for "age" kept, nothing for "income" or later columns
	assert.Equal(t, len(rec.figs), 1)
	assert.Equal(t, rec.figs[0].Column, "age")
}

func TestCompareMissingInBefore(t *testing.T) {
	before := table(t, "data", []string{"age"}, []float64{1})
	after := table(t, "data_cleaned", []string{"age", "income"}, []float64{1}, []float64{2})

	rec := &recorder{}
	err := NewComparisonPlotter(rec, DefaultOptions(), quiet()).Compare([]string{"income"}, before, after)
	assert.ErrorContains(t, err, "before cleaning")
	assert.Assert(t, errors.Is(err, data.ErrMissingColumn))
	assert.Equal(t, len(rec.figs), 0)
}

func TestCompareDisplayErrorStops(t *testing.T) {
	tbl := table(t, "data", []string{"a", "b"}, []float64{1, 2}, []float64{3, 4})
	calls := 0
	display := DisplayFunc(func(fig *Figure) error {
		calls++
		return errors.New("screen gone")
	})
	err := NewComparisonPlotter(display, DefaultOptions(), nil).Compare([]string{"a", "b"}, tbl, tbl)
	assert.ErrorContains(t, err, `display "a": screen gone`)
	assert.Equal(t, calls, 1)
}
