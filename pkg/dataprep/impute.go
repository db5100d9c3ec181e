package dataprep

import (
	"math"
	"sort"

	"cleanviz/pkg/stats"
)

// ---------- Simple Imputation Methods ----------

func fill(col []float64, v float64) []float64 {
	out := make([]float64, len(col))
	for i, x := range col {
		if math.IsNaN(x) {
			out[i] = v
		} else {
			out[i] = x
		}
	}
	return out
}

// ImputeMean replaces missing values with the column mean.
func ImputeMean(col []float64) []float64 {
	return fill(col, stats.Mean(stats.Finite(col)))
}

// ImputeMedian replaces missing values with the column median.
func ImputeMedian(col []float64) []float64 {
	return fill(col, stats.Median(stats.Finite(col)))
}

// ImputeMode replaces missing values with the most frequent value.
func ImputeMode(col []float64) []float64 {
	return fill(col, stats.Mode(stats.Finite(col)))
}

// ImputeConstant replaces missing values with a fixed constant.
func ImputeConstant(col []float64, constant float64) []float64 {
	return fill(col, constant)
}

// ---------- Advanced Imputation Methods ----------

// ImputeKNN fills each missing cell of cols[target] with the mean of that column
// over the k nearest rows that have it, measured by euclidean distance on the
// other columns. Rows with no usable neighbour get 0.
func ImputeKNN(cols [][]float64, target, k int) []float64 {
	col := cols[target]
	out := append([]float64(nil), col...)

	type neighbour struct {
		dist  float64
		value float64
	}

	for i := range col {
		if !math.IsNaN(col[i]) {
			continue
		}
		var neighbours []neighbour
		for j := range col {
			if i == j || math.IsNaN(col[j]) {
				continue
			}
			neighbours = append(neighbours, neighbour{dist: rowDistance(cols, i, j, target), value: col[j]})
		}
		if len(neighbours) == 0 {
			out[i] = 0
			continue
		}
		sort.SliceStable(neighbours, func(a, b int) bool { return neighbours[a].dist < neighbours[b].dist })
		if len(neighbours) > k {
			neighbours = neighbours[:k]
		}
		sum := 0.0
		for _, n := range neighbours {
			sum += n.value
		}
		out[i] = sum / float64(len(neighbours))
	}
	return out
}

// rowDistance computes the distance between rows a and b ignoring the target
// column and any cell missing on either side.
func rowDistance(cols [][]float64, a, b, target int) float64 {
	var sum float64
	for c := range cols {
		if c == target {
			continue
		}
		x, y := cols[c][a], cols[c][b]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		sum += (x - y) * (x - y)
	}
	return math.Sqrt(sum)
}
