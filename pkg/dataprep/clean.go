package dataprep

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"cleanviz/pkg/data"
	"cleanviz/pkg/stats"
)

// Strategy names the imputation chosen for a column.
type Strategy string

const (
	StrategyNone     Strategy = "none"
	StrategyDrop     Strategy = "drop"
	StrategyMean     Strategy = "mean"
	StrategyMedian   Strategy = "median"
	StrategyKNN      Strategy = "knn"
	StrategyConstant Strategy = "constant"
)

// ChooseStrategy selects an imputation strategy from the missing ratio and the
// distribution of the present values.
func ChooseStrategy(col []float64, missingRatio, threshold float64) Strategy {
	switch {
	case missingRatio == 0:
		return StrategyNone
	case missingRatio > threshold:
		return StrategyDrop
	case missingRatio < 0.05:
		// Low missingness → mean
		return StrategyMean
	case stats.Skew(stats.Finite(col)) > 1.0:
		return StrategyMedian
	case missingRatio < 0.2:
		return StrategyKNN
	default:
		return StrategyConstant
	}
}

// MissingValues drops columns whose missing ratio exceeds Threshold and
// imputes the rest.
type MissingValues struct {
	Threshold float64
	K         int
	Logger    logrus.FieldLogger
}

func (m MissingValues) Name() string { return "missing-values" }

func (m MissingValues) Apply(t *data.Table) (*data.Table, error) {
	logger := m.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	k := m.K
	if k <= 0 {
		k = 3
	}

	rows := t.Rows()
	cols := t.Columns()
	var headers []string
	var kept [][]float64

	for c, name := range t.Headers() {
		col := cols[c]
		missing := 0
		for _, v := range col {
			if math.IsNaN(v) {
				missing++
			}
		}
		ratio := 0.0
		if rows > 0 {
			ratio = float64(missing) / float64(rows)
		}

		strategy := ChooseStrategy(col, ratio, m.Threshold)
		switch strategy {
		case StrategyDrop:
			logger.WithFields(logrus.Fields{"column": name, "missing": fmt.Sprintf("%.2f%%", ratio*100)}).Infoln("dropping column")
			continue
		case StrategyMean:
			col = ImputeMean(col)
		case StrategyMedian:
			col = ImputeMedian(col)
		case StrategyKNN:
			col = ImputeKNN(cols, c, k)
		case StrategyConstant:
			col = ImputeConstant(col, 0)
		}
		if strategy != StrategyNone {
			logger.WithFields(logrus.Fields{"column": name, "strategy": strategy}).Infoln("imputed missing values")
		}
		headers = append(headers, name)
		kept = append(kept, col)
	}
	return data.NewTable(t.Name(), headers, kept)
}

// DropDuplicates removes duplicate rows from the dataset, keeping the first.
type DropDuplicates struct{}

func (DropDuplicates) Name() string { return "drop-duplicates" }

func (DropDuplicates) Apply(t *data.Table) (*data.Table, error) {
	headers := t.Headers()
	out := make([][]float64, len(headers))
	seen := make(map[string]struct{})
	for r := range t.Rows() {
		row := t.Row(r)
		key := rowKey(row)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		for c, v := range row {
			out[c] = append(out[c], v)
		}
	}
	for c := range out {
		if out[c] == nil {
			out[c] = []float64{}
		}
	}
	return data.NewTable(t.Name(), headers, out)
}

// rowKey formats a row so that NaN cells compare equal.
func rowKey(row []float64) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
