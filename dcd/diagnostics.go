package dcd

import (
	"fmt"
	"math"
)

// Diagnostics are read-only figures computed after training.
type Diagnostics struct {
	// Objective is the dual objective 1/2 alpha'Qalpha - e'alpha with the
	// L2-loss diagonal folded into Q. It is built from w·w and halved, not
	// from the plain sum of the weights.
	Objective      float64
	SupportVectors int
	// Valid is false when the objective could not be computed; the model is
	// unaffected either way.
	Valid bool
}

// ComputeDiagnostics evaluates the objective and counts support vectors.
// It never panics and never alters the solver state.
func (s *Solver) ComputeDiagnostics() (d Diagnostics) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("objective computation failed", "panic", fmt.Sprint(r))
			d = Diagnostics{}
		}
	}()

	if s.w == nil {
		return Diagnostics{}
	}

	v := operatorDot(s.w, s.w)
	nSV := 0
	for i := 0; i < s.nSamples; i++ {
		v += s.alpha[i] * (s.alpha[i]*s.bounds.diag[GETI(s.y, i)] - 2)
		if s.alpha[i] > AlphaZero {
			nSV++
		}
	}

	d = Diagnostics{Objective: v / 2, SupportVectors: nSV, Valid: true}
	if math.IsNaN(d.Objective) || math.IsInf(d.Objective, 0) {
		s.logger.Warn("objective value is not finite", "objective", d.Objective)
		d.Valid = false
	}
	return d
}
