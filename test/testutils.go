// Package test holds helpers shared by the package tests.
package test

import (
	"os"

	"github.com/cockroachdb/errors"
)

// WriteToFile writes an array of lines to a file
func WriteToFile(file *os.File, lines []string) error {
	for _, line := range lines {
		if _, err := file.WriteString(line + "\n"); err != nil {
			return errors.Wrapf(err, "write %s", file.Name())
		}
	}
	return nil
}

// WriteProblemFile creates path and fills it with libsvm lines.
func WriteProblemFile(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := WriteToFile(f, lines); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SeparableLines is a small linearly separable two-feature problem:
// positives have x1 > 0, negatives x1 < 0.
var SeparableLines = []string{
	"+1 1:1 2:0.5",
	"+1 1:2 2:-0.5",
	"+1 1:1.5 2:1",
	"+1 1:0.8",
	"-1 1:-1 2:0.5",
	"-1 1:-2 2:-0.5",
	"-1 1:-1.5 2:1",
	"-1 1:-0.8",
}
