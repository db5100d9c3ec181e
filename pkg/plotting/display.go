package plotting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Displayer presents a finished figure. A figure is shown exactly once.
type Displayer interface {
	Show(fig *Figure) error
}

// DisplayFunc adapts a function to the Displayer interface.
type DisplayFunc func(fig *Figure) error

func (f DisplayFunc) Show(fig *Figure) error { return f(fig) }

// FileDisplayer shows figures by rendering each to its own image file.
// Files are numbered in the order they are shown.
type FileDisplayer struct {
	dir    string
	format string
	logger logrus.FieldLogger
	shown  int
}

// NewFileDisplayer creates dir if needed and returns a displayer writing format images into it.
func NewFileDisplayer(dir, format string, logger logrus.FieldLogger) (*FileDisplayer, error) {
	format = strings.ToLower(format)
	if !SupportedFormat(format) {
		return nil, errors.Errorf("unsupported figure format %q", format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create figure directory")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FileDisplayer{dir: dir, format: format, logger: logger}, nil
}

func (d *FileDisplayer) Show(fig *Figure) error {
	d.shown++
	path := filepath.Join(d.dir, fmt.Sprintf("%02d_%s.%s", d.shown, fileSafe(fig.Column), d.format))

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create figure file")
	}
	if _, err := fig.WriteTo(file, d.format); err != nil {
		file.Close()
		return errors.Wrapf(err, "render figure %q", fig.Column)
	}
	if err := file.Close(); err != nil {
		return errors.Wrap(err, "close figure file")
	}

	d.logger.WithFields(logrus.Fields{"column": fig.Column, "path": path}).Infoln("figure saved")
	return nil
}

// Shown returns how many figures have been displayed.
func (d *FileDisplayer) Shown() int { return d.shown }

func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, name)
}
