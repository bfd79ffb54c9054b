package dcd

import (
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// SampleStore is the dense data matrix the solver trains on. Each column is
// one sample: rows 0..F-1 hold its features and row F holds its label.
// The solver only reads from it.
type SampleStore interface {
	mat.Matrix
}

// NewSampleStore lays out feature vectors and labels in the column-per-sample
// format expected by the solver.
func NewSampleStore(features [][]float64, labels []float64) (*mat.Dense, error) {
	if len(features) == 0 {
		return nil, errors.Wrap(ErrInvalidSampleStore, "no samples")
	}
	if len(features) != len(labels) {
		return nil, errors.Wrapf(ErrInvalidSampleStore, "%d feature vectors but %d labels", len(features), len(labels))
	}
	nFeatures := len(features[0])
	if nFeatures == 0 {
		return nil, errors.Wrap(ErrInvalidSampleStore, "samples have no features")
	}

	data := mat.NewDense(nFeatures+1, len(features), nil)
	for i, x := range features {
		if len(x) != nFeatures {
			return nil, errors.Wrapf(ErrInvalidSampleStore, "sample %d has %d features, expected %d", i, len(x), nFeatures)
		}
		for j, v := range x {
			data.Set(j, i, v)
		}
		data.Set(nFeatures, i, labels[i])
	}
	return data, nil
}

// storeDims returns the sample count and the feature count of a store.
func storeDims(store SampleStore) (nSamples int, nFeatures int, err error) {
	if store == nil {
		return 0, 0, errors.Wrap(ErrInvalidSampleStore, "store is nil")
	}
	r, c := store.Dims()
	if r < 2 {
		return 0, 0, errors.Wrapf(ErrInvalidSampleStore, "need at least one feature row and the label row, got %d rows", r)
	}
	if c < 1 {
		return 0, 0, errors.Wrap(ErrInvalidSampleStore, "no samples")
	}
	return c, r - 1, nil
}

// extractLabels maps the label row to +1 for positive values and -1 otherwise.
func extractLabels(store SampleStore) []int8 {
	r, c := store.Dims()
	y := make([]int8, c)
	for i := 0; i < c; i++ {
		if store.At(r-1, i) > 0 {
			y[i] = 1
		} else {
			y[i] = -1
		}
	}
	return y
}

// Labels returns the ±1 label of every sample in the store.
func Labels(store SampleStore) ([]float64, error) {
	if _, _, err := storeDims(store); err != nil {
		return nil, err
	}
	y := extractLabels(store)
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = float64(v)
	}
	return out, nil
}

// columnSubset is a read-only view of selected samples of a store.
type columnSubset struct {
	base SampleStore
	cols []int
}

func newColumnSubset(base SampleStore, cols []int) *columnSubset {
	return &columnSubset{base: base, cols: cols}
}

func (s *columnSubset) Dims() (r, c int) {
	r, _ = s.base.Dims()
	return r, len(s.cols)
}

func (s *columnSubset) At(i, j int) float64 {
	return s.base.At(i, s.cols[j])
}

func (s *columnSubset) T() mat.Matrix {
	return mat.Transpose{Matrix: s}
}
