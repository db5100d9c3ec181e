package dataprep

import (
	"math"

	"cleanviz/pkg/data"
	"cleanviz/pkg/stats"
)

// ClipOutliers clips values in each column to the given lower and upper percentiles.
// Missing cells are left untouched.
type ClipOutliers struct {
	Lower, Upper float64
}

func (ClipOutliers) Name() string { return "clip-outliers" }

func (o ClipOutliers) Apply(t *data.Table) (*data.Table, error) {
	cols := t.Columns()
	for j, col := range cols {
		present := stats.Finite(col)
		if len(present) == 0 {
			continue
		}
		low := stats.Percentile(present, o.Lower)
		high := stats.Percentile(present, o.Upper)
		for i, v := range col {
			if math.IsNaN(v) {
				continue
			}
			cols[j][i] = math.Min(math.Max(v, low), high)
		}
	}
	return data.NewTable(t.Name(), t.Headers(), cols)
}
