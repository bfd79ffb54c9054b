package dcd

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// augmentedColumn copies sample i of store into dst and sets the trailing
// bias slot, which holds the label in the store, to 1.
func augmentedColumn(dst []float64, i int, store SampleStore) []float64 {
	dst = mat.Col(dst, i, store)
	dst[len(dst)-1] = 1
	return dst
}

// operatorDot is the equivalent of dot
func operatorDot(w []float64, x []float64) float64 {
	return floats.Dot(w, x)
}

// operatorAxpy is the equivalent of axpy, y += a*x
func operatorAxpy(a float64, x []float64, y []float64) {
	floats.AddScaled(y, a, x)
}
