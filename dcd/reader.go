package dcd

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

type sparseSample struct {
	label   float64
	indices []int
	values  []float64
}

// ReadProblem reads libsvm text, one "label index:value ..." sample per
// line with 1-based ascending indices, into a SampleStore whose feature
// count is the largest index seen.
func ReadProblem(inputStream io.Reader) (*mat.Dense, error) {
	return ReadProblemWithFeatures(inputStream, 0)
}

// ReadProblemWithFeatures is ReadProblem with a fixed feature count. Indices
// above nFeatures are dropped, so a test file lines up with the training
// file. nFeatures 0 means the largest index seen.
func ReadProblemWithFeatures(inputStream io.Reader, nFeatures int) (*mat.Dense, error) {
	samples, maxIndex, err := readSparseSamples(inputStream)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, errors.Wrap(ErrInvalidSampleStore, "input contains no samples")
	}
	if nFeatures <= 0 {
		nFeatures = maxIndex
	}
	if nFeatures == 0 {
		return nil, errors.Wrap(ErrInvalidSampleStore, "input contains no features")
	}
	return constructProblem(samples, nFeatures), nil
}

// ReadProblemFile opens fileName and reads it with ReadProblemWithFeatures.
func ReadProblemFile(fileName string, nFeatures int) (*mat.Dense, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", fileName)
	}
	defer f.Close()

	store, err := ReadProblemWithFeatures(f, nFeatures)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", fileName)
	}
	return store, nil
}

func readSparseSamples(inputStream io.Reader) ([]sparseSample, int, error) {
	scanner := bufio.NewScanner(inputStream)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var samples []sparseSample
	maxIndex := 0
	lineNr := 0

	for scanner.Scan() {
		lineNr++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := strings.Fields(line)
		label, err := strconv.ParseFloat(tokens[0], 64)
		if err != nil {
			return nil, 0, errors.Mark(errors.Wrapf(err, "line %d: label %q", lineNr, tokens[0]), ErrMalformedInput)
		}

		sample := sparseSample{
			label:   label,
			indices: make([]int, 0, len(tokens)-1),
			values:  make([]float64, 0, len(tokens)-1),
		}
		indexBefore := 0
		for _, t := range tokens[1:] {
			keyVal := strings.Split(t, ":")
			if len(keyVal) != 2 {
				return nil, 0, errors.Wrapf(ErrMalformedInput, "line %d: token %q is not index:value", lineNr, t)
			}
			index, err := strconv.Atoi(keyVal[0])
			if err != nil {
				return nil, 0, errors.Mark(errors.Wrapf(err, "line %d: index %q", lineNr, keyVal[0]), ErrMalformedInput)
			}
			if index <= indexBefore {
				return nil, 0, errors.Wrapf(ErrMalformedInput, "line %d: feature indices must be positive and ascending, got %d after %d", lineNr, index, indexBefore)
			}
			value, err := strconv.ParseFloat(keyVal[1], 64)
			if err != nil {
				return nil, 0, errors.Mark(errors.Wrapf(err, "line %d: value %q", lineNr, keyVal[1]), ErrMalformedInput)
			}
			sample.indices = append(sample.indices, index)
			sample.values = append(sample.values, value)
			indexBefore = index
		}
		if indexBefore > maxIndex {
			maxIndex = indexBefore
		}
		samples = append(samples, sample)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "scan input")
	}
	return samples, maxIndex, nil
}

func constructProblem(samples []sparseSample, nFeatures int) *mat.Dense {
	data := mat.NewDense(nFeatures+1, len(samples), nil)
	for i, sample := range samples {
		for k, index := range sample.indices {
			if index > nFeatures {
				break
			}
			data.Set(index-1, i, sample.values[k])
		}
		data.Set(nFeatures, i, sample.label)
	}
	return data
}
