package dcd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewSampleStoreLayout(t *testing.T) {
	store, err := NewSampleStore([][]float64{{1, 2}, {3, 4}, {5, 6}}, []float64{1, -1, 0.5})
	require.NoError(t, err)

	r, c := store.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, []float64{3, 4, -1}, mat.Col(nil, 1, store))

	nSamples, nFeatures, err := storeDims(store)
	require.NoError(t, err)
	assert.Equal(t, 3, nSamples)
	assert.Equal(t, 2, nFeatures)
}

func TestNewSampleStoreErrors(t *testing.T) {
	_, err := NewSampleStore(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidSampleStore)

	_, err = NewSampleStore([][]float64{{1}}, []float64{1, -1})
	assert.ErrorIs(t, err, ErrInvalidSampleStore)

	_, err = NewSampleStore([][]float64{{}}, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidSampleStore)

	_, err = NewSampleStore([][]float64{{1, 2}, {1}}, []float64{1, -1})
	assert.ErrorIs(t, err, ErrInvalidSampleStore)
}

func TestStoreDimsRejectsDegenerateStores(t *testing.T) {
	_, _, err := storeDims(nil)
	assert.ErrorIs(t, err, ErrInvalidSampleStore)

	_, _, err = storeDims(mat.NewDense(1, 4, nil))
	assert.ErrorIs(t, err, ErrInvalidSampleStore, "label row only")
}

func TestLabelsTreatsNonPositiveAsNegative(t *testing.T) {
	store, err := NewSampleStore([][]float64{{1}, {1}, {1}, {1}}, []float64{2, 0, -3, 1})
	require.NoError(t, err)

	labels, err := Labels(store)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -1, -1, 1}, labels)
}

func TestAugmentedColumnLeavesStoreIntact(t *testing.T) {
	store := twoPoints(t)
	buf := make([]float64, 3)

	x := augmentedColumn(buf, 1, store)
	assert.Equal(t, []float64{-1, 0, 1}, x)
	assert.Equal(t, -1.0, store.At(2, 1), "label stays in the store")
}

func TestColumnSubset(t *testing.T) {
	store, err := NewSampleStore([][]float64{{1}, {2}, {3}}, []float64{1, -1, 1})
	require.NoError(t, err)

	view := newColumnSubset(store, []int{2, 0})
	r, c := view.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 3.0, view.At(0, 0))
	assert.Equal(t, 1.0, view.At(0, 1))
	assert.Equal(t, 1.0, view.T().At(1, 0))
}

func TestPrecomputeDiagonal(t *testing.T) {
	store, err := NewSampleStore([][]float64{{3, 4}, {1, 0}}, []float64{1, -1})
	require.NoError(t, err)
	y := extractLabels(store)
	buf := make([]float64, 3)

	qd := precomputeDiagonal(store, y, newClassBounds(L1_SVM, 1, 1), LinearKernel{}, buf)
	assert.Equal(t, []float64{26, 2}, qd, "squared norm plus one for the bias")

	qd = precomputeDiagonal(store, y, newClassBounds(L2_SVM, 2, 0.5), LinearKernel{}, buf)
	assert.Equal(t, []float64{26.25, 3}, qd)
}

func TestOperators(t *testing.T) {
	w := []float64{1, 2, 3}
	assert.Equal(t, 14.0, operatorDot(w, w))

	operatorAxpy(-2, []float64{1, 1, 1}, w)
	assert.Equal(t, []float64{-1, 0, 1}, w)

	assert.Equal(t, 5.0, LinearKernel{}.Eval([]float64{1, 2}, []float64{1, 2}))
}
