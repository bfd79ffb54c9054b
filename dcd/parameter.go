package dcd

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Parameter contains the settings of one training run
type Parameter struct {
	cp             float64
	cn             float64
	regularization *Regularization
	maxEpochs      int
	maxIters       int     // coordinate steps per epoch, 0 means one pass
	accuracy       float64 // Stopping criteria
	seed           int64
	objValue       bool
}

// NewParameter constructs a Parameter. Values are checked by Validate, which
// every training entry point calls before touching the data.
func NewParameter(cp float64, cn float64, regularization *Regularization, maxEpochs int, maxIters int, accuracy float64) *Parameter {
	parameter := &Parameter{
		cp:             cp,
		cn:             cn,
		regularization: regularization,
		maxEpochs:      maxEpochs,
		maxIters:       maxIters,
		accuracy:       accuracy,
	}

	return parameter
}

// DefaultParameter is L1-loss with C = 1, 1000 epochs and accuracy 0.1.
func DefaultParameter() *Parameter {
	return NewParameter(1, 1, L1_SVM, 1000, 0, 0.1)
}

// Validate reports the first setting that makes the bundle unusable.
func (p *Parameter) Validate() error {
	if err := checkPenalty("Cp", p.cp); err != nil {
		return err
	}
	if err := checkPenalty("Cn", p.cn); err != nil {
		return err
	}
	if p.regularization == nil {
		return errors.Wrap(ErrInvalidParameter, "regularization must be set")
	}
	if p.maxEpochs < 1 {
		return errors.Wrapf(ErrInvalidParameter, "max epochs must be >= 1, got %d", p.maxEpochs)
	}
	if p.maxIters < 0 {
		return errors.Wrapf(ErrInvalidParameter, "max iterations per epoch must be >= 0, got %d", p.maxIters)
	}
	if math.IsNaN(p.accuracy) || p.accuracy <= 0 {
		return errors.Wrapf(ErrInvalidParameter, "accuracy must be > 0, got %g", p.accuracy)
	}
	return nil
}

func checkPenalty(name string, c float64) error {
	if math.IsNaN(c) || math.IsInf(c, 0) || c <= 0 {
		return errors.Wrapf(ErrInvalidParameter, "%s must be a positive finite number, got %g", name, c)
	}
	return nil
}

// SetPenalty sets the class penalties. Asymmetric values weight the classes.
func (p *Parameter) SetPenalty(cp float64, cn float64) error {
	if err := checkPenalty("Cp", cp); err != nil {
		return err
	}
	if err := checkPenalty("Cn", cn); err != nil {
		return err
	}
	p.cp = cp
	p.cn = cn
	return nil
}

// SetC sets both class penalties to c.
func (p *Parameter) SetC(c float64) error {
	return p.SetPenalty(c, c)
}

// SetRegularization changes the loss variant.
func (p *Parameter) SetRegularization(regularization *Regularization) error {
	if regularization == nil {
		return errors.Wrap(ErrInvalidParameter, "regularization must not be nil")
	}
	p.regularization = regularization
	return nil
}

// SetMaxEpochs does just that
func (p *Parameter) SetMaxEpochs(maxEpochs int) error {
	if maxEpochs < 1 {
		return errors.Wrapf(ErrInvalidParameter, "max epochs must be >= 1, got %d", maxEpochs)
	}
	p.maxEpochs = maxEpochs
	return nil
}

// SetMaxIters sets the coordinate steps per epoch; 0 restores one full pass.
func (p *Parameter) SetMaxIters(maxIters int) error {
	if maxIters < 0 {
		return errors.Wrapf(ErrInvalidParameter, "max iterations per epoch must be >= 0, got %d", maxIters)
	}
	p.maxIters = maxIters
	return nil
}

// SetAccuracy sets the optimality gap tolerance.
func (p *Parameter) SetAccuracy(accuracy float64) error {
	if math.IsNaN(accuracy) || accuracy <= 0 {
		return errors.Wrapf(ErrInvalidParameter, "accuracy must be > 0, got %g", accuracy)
	}
	p.accuracy = accuracy
	return nil
}

// SetSeed seeds the permutation generator used when no *rand.Rand is injected.
func (p *Parameter) SetSeed(seed int64) {
	p.seed = seed
}

// SetObjValue turns the post-training objective computation on or off.
func (p *Parameter) SetObjValue(enabled bool) {
	p.objValue = enabled
}

// Cp does just that
func (p *Parameter) Cp() float64 { return p.cp }

// Cn does just that
func (p *Parameter) Cn() float64 { return p.cn }

// Regularization does just that
func (p *Parameter) Regularization() *Regularization { return p.regularization }

// MaxEpochs does just that
func (p *Parameter) MaxEpochs() int { return p.maxEpochs }

// MaxIters does just that
func (p *Parameter) MaxIters() int { return p.maxIters }

// Accuracy does just that
func (p *Parameter) Accuracy() float64 { return p.accuracy }

// Seed does just that
func (p *Parameter) Seed() int64 { return p.seed }

// ObjValue reports whether diagnostics are computed after training.
func (p *Parameter) ObjValue() bool { return p.objValue }

// clone copies the bundle so a search can vary C without touching the caller's value.
func (p *Parameter) clone() *Parameter {
	c := *p
	return &c
}
