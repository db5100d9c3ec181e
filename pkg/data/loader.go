package data

import (
	"bufio"
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// IsMissing reports whether a raw cell denotes a missing value.
func IsMissing(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NA", "NaN", "nan", "null":
		return true
	}
	return false
}

// FromRecords builds a table from CSV-style records. The first record is the header;
// a leading byte-order mark and surrounding blanks are stripped from header names.
// Missing or non-numeric cells become NaN.
func FromRecords(name string, records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.Errorf("dataset %q: no header row", name)
	}
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		headers[i] = strings.TrimSpace(h)
	}
	cols := make([][]float64, len(headers))
	for c := range cols {
		cols[c] = make([]float64, 0, len(records)-1)
	}
	for r, rec := range records[1:] {
		if len(rec) != len(headers) {
			return nil, errors.Errorf("dataset %q: row %d has %d fields, want %d", name, r+1, len(rec), len(headers))
		}
		for c, s := range rec {
			v := math.NaN()
			if !IsMissing(s) {
				if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
					v = f
				}
			}
			cols[c] = append(cols[c], v)
		}
	}
	return NewTable(name, headers, cols)
}

// ReadCSV reads a table from r.
func ReadCSV(name string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read dataset %q", name)
	}
	return FromRecords(name, records)
}

// LoadCSV reads the CSV file at path into a table named after the file.
func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ReadCSV(name, file)
}

// WriteCSV writes t with a header row. Missing cells are written empty.
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Headers()); err != nil {
		return errors.Wrap(err, "write header")
	}
	rec := make([]string, len(t.headers))
	for r := range t.Rows() {
		for c := range t.cols {
			v := t.cols[c][r]
			if math.IsNaN(v) {
				rec[c] = ""
			} else {
				rec[c] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := writer.Write(rec); err != nil {
			return errors.Wrapf(err, "write row %d", r)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flush csv")
}
