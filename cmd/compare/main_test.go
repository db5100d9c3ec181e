package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"gotest.tools/v3/assert"

	"cleanviz/internal/config"
	"cleanviz/pkg/data"
)

func testConfig(t *testing.T, args ...string) config.Cfg {
	t.Helper()
	cfg, err := config.Load(config.NewFlagSet("test"), args)
	assert.NilError(t, err)
	return cfg
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	assert.NilError(t, os.WriteFile(path, []byte(body), 0o644))
}

func quiet() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}

func figures(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	assert.NilError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRunWithCleanedFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "figs")
	writeFile(t, filepath.Join(dir, "data.csv"), "age\n1\n2\n2\n3\n")
	writeFile(t, filepath.Join(dir, "data_cleaned.csv"), "age\n2\n2\n3\n")

	cfg := testConfig(t,
		"--before", filepath.Join(dir, "data.csv"),
		"--after", filepath.Join(dir, "data_cleaned.csv"),
		"--columns", "age",
		"--output-dir", out,
	)
	assert.NilError(t, run(cfg, quiet()))
	assert.DeepEqual(t, figures(t, out), []string{"01_age.png"})
}

func TestRunStopsAtMissingColumn(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "figs")
	writeFile(t, filepath.Join(dir, "data.csv"), "age,income\n1,10\n2,20\n")
	writeFile(t, filepath.Join(dir, "data_cleaned.csv"), "age\n1\n2\n")

	cfg := testConfig(t,
		"--before", filepath.Join(dir, "data.csv"),
		"--after", filepath.Join(dir, "data_cleaned.csv"),
		"--columns", "age,income",
		"--output-dir", out,
	)
	err := run(cfg, quiet())
	assert.Assert(t, errors.Is(err, data.ErrMissingColumn))
	assert.DeepEqual(t, figures(t, out), []string{"01_age.png"})
}

func TestRunCleansInProcess(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "figs")
	cleanedOut := filepath.Join(dir, "cleaned.csv")
	writeFile(t, filepath.Join(dir, "raw.csv"), "age,notes\n1,\n2,\n2,\n2,\n3,5\n")

	cfg := testConfig(t,
		"--before", filepath.Join(dir, "raw.csv"),
		"--columns", "age",
		"--output-dir", out,
		"--format", "svg",
		"--cleaned-out", cleanedOut,
	)
	assert.NilError(t, run(cfg, quiet()))
	assert.DeepEqual(t, figures(t, out), []string{"01_age.svg"})

	// notes is 80% missing and dropped, duplicates removed
	cleaned, err := data.LoadCSV(cleanedOut)
	assert.NilError(t, err)
	assert.DeepEqual(t, cleaned.Headers(), []string{"age"})
	age, _ := cleaned.Column("age")
	assert.DeepEqual(t, age, []float64{1, 2, 3})
}

func TestRunMissingInput(t *testing.T) {
	cfg := testConfig(t, "--before", filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorContains(t, run(cfg, quiet()), "open dataset")
}

func TestLoadConfigHelp(t *testing.T) {
	stderr := os.Stderr
	devnull, err := os.Open(os.DevNull)
	assert.NilError(t, err)
	os.Stderr = devnull
	defer func() { os.Stderr = stderr; devnull.Close() }()

	_, ok, err := loadConfig("compare", []string{"--help"})
	assert.NilError(t, err)
	assert.Assert(t, !ok)

	cfg, ok, err := loadConfig("compare", []string{"--before", "raw.csv"})
	assert.NilError(t, err)
	assert.Assert(t, ok)
	assert.Equal(t, cfg.Before, "raw.csv")

	_, ok, err = loadConfig("compare", nil)
	assert.ErrorContains(t, err, "before dataset path is required")
	assert.Assert(t, !ok)
}

func TestRunReportsCleanedOutputErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "raw.csv"), "age\n1\n2\n")

	cfg := testConfig(t,
		"--before", filepath.Join(dir, "raw.csv"),
		"--output-dir", filepath.Join(dir, "figs"),
		"--cleaned-out", filepath.Join(dir, "missing", "cleaned.csv"),
	)
	assert.ErrorContains(t, run(cfg, quiet()), "create cleaned output")
}
