package pipeline

import "cleanviz/pkg/data"

// Schema describes the shape of a dataset and its missing cells per column.
type Schema struct {
	Rows    int
	Columns []string
	Missing map[string]int
}

func Describe(t *data.Table) Schema {
	s := Schema{Rows: t.Rows(), Columns: t.Headers(), Missing: map[string]int{}}
	for _, c := range s.Columns {
		n, _ := t.Missing(c)
		s.Missing[c] = n
	}
	return s
}

func (s Schema) TotalMissing() int {
	total := 0
	for _, n := range s.Missing {
		total += n
	}
	return total
}
