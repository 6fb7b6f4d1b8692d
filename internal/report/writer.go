package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Reporter names accepted in the configuration
const (
	ReporterConsole = "console"
	ReporterHTML    = "html"
	ReporterJUnit   = "junit"
	ReporterResults = "results"
)

// Writer persists a finished run
type Writer interface {
	Name() string
	Write(result RunResult) error
}

// New creates the named file writer rooted at outputDir
func New(name, outputDir string) (Writer, error) {
	switch name {
	case ReporterHTML:
		return &HTMLWriter{Path: filepath.Join(outputDir, "report.html")}, nil
	case ReporterJUnit:
		return &JUnitWriter{Path: filepath.Join(outputDir, "junit.xml")}, nil
	case ReporterResults:
		return &ResultsWriter{Dir: filepath.Join(outputDir, "results")}, nil
	default:
		return nil, fmt.Errorf("unknown reporter %q", name)
	}
}

// NewWriters creates a writer for every file reporter in names. The
// console reporter is a Listener and is skipped here.
func NewWriters(names []string, outputDir string) ([]Writer, error) {
	var writers []Writer
	for _, name := range names {
		if name == ReporterConsole {
			continue
		}
		w, err := New(name, outputDir)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}
	return writers, nil
}

// WriteAll runs every writer and joins their errors
func WriteAll(writers []Writer, result RunResult) error {
	var errs []error
	for _, w := range writers {
		if err := w.Write(result); err != nil {
			errs = append(errs, fmt.Errorf("%s report: %w", w.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
