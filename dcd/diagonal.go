package dcd

// classBounds holds the per-class diagonal offset and alpha upper bound,
// indexed by label like liblinear's GETI: 0 for y = -1, 2 for y = +1.
type classBounds struct {
	diag       [3]float64
	upperBound [3]float64
}

func newClassBounds(regularization *Regularization, cp float64, cn float64) classBounds {
	var b classBounds
	b.diag[0] = regularization.diagonal(cn)
	b.diag[2] = regularization.diagonal(cp)
	b.upperBound[0] = regularization.upperBound(cn)
	b.upperBound[2] = regularization.upperBound(cp)
	return b
}

// GETI maps a ±1 label to its slot in classBounds.
func GETI(y []int8, i int) int {
	return int(y[i] + 1)
}

// precomputeDiagonal fills QD[i] = diag(y_i) + K(x_i, x_i) over the
// augmented vector [x_i, 1]. For the linear kernel this is the squared norm
// of the features plus one for the bias.
func precomputeDiagonal(store SampleStore, y []int8, bounds classBounds, kernel Kernel, buf []float64) []float64 {
	qd := make([]float64, len(y))
	for i := range y {
		xi := augmentedColumn(buf, i, store)
		qd[i] = bounds.diag[GETI(y, i)] + kernel.Eval(xi, xi)
	}
	return qd
}
