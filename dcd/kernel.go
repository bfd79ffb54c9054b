package dcd

import "gonum.org/v1/gonum/floats"

// Kernel evaluates the inner product of two samples in feature space.
//
// The solver keeps an explicit primal weight vector w and evaluates both the
// diagonal term and the margin w·x through the kernel. That form is exact only
// for the linear kernel, so NewSolver rejects any other implementation.
type Kernel interface {
	Eval(a, b []float64) float64
}

// LinearKernel is the plain dot product.
type LinearKernel struct{}

// Eval does just that
func (LinearKernel) Eval(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// isLinear reports whether kernel is the plain dot product.
func isLinear(kernel Kernel) bool {
	switch kernel.(type) {
	case LinearKernel, *LinearKernel:
		return true
	}
	return false
}
