package dcd

import (
	"math"
	"strings"
)

// L1_SVM : L2-regularized L1-loss support vector classification (dual)
var L1_SVM = NewRegularization(1, "L2R_L1LOSS_SVC_DUAL", "l1", true)

// L2_SVM : L2-regularized L2-loss support vector classification (dual)
var L2_SVM = NewRegularization(2, "L2R_L2LOSS_SVC_DUAL", "l2", false)

var regularizationValues = []*Regularization{
	L1_SVM,
	L2_SVM,
}

// Regularization selects the loss variant of the dual problem. L1-loss keeps
// alpha inside [0, C] with no diagonal term, L2-loss leaves alpha unbounded
// above and adds 1/(2C) to the diagonal instead.
type Regularization struct {
	id       int
	name     string
	alias    string
	boundBox bool
}

// NewRegularization returns a new Regularization based on input fields
func NewRegularization(id int, name string, alias string, boundBox bool) *Regularization {
	return &Regularization{
		id:       id,
		name:     name,
		alias:    alias,
		boundBox: boundBox,
	}
}

// RegularizationValues gives a list of Regularizations
func RegularizationValues() []*Regularization {
	return regularizationValues
}

// GetRegularizationById returns the Regularization with the given id or nil.
func GetRegularizationById(id int) *Regularization {
	for _, r := range regularizationValues {
		if r.id == id {
			return r
		}
	}
	return nil
}

// GetRegularizationByName accepts the long name or the short alias
// ("l1", "l2"), case-insensitive.
func GetRegularizationByName(name string) *Regularization {
	name = strings.TrimSpace(name)
	for _, r := range regularizationValues {
		if strings.EqualFold(r.name, name) || strings.EqualFold(r.alias, name) {
			return r
		}
	}
	return nil
}

// Id returns the numeric identifier.
func (r *Regularization) Id() int {
	return r.id
}

// Name is the liblinear solver name of the variant.
func (r *Regularization) Name() string {
	return r.name
}

// Alias is the short name used by configuration files.
func (r *Regularization) Alias() string {
	return r.alias
}

// String implements fmt.Stringer.
func (r *Regularization) String() string {
	return r.name
}

// diagonal returns the curvature offset added to QD for a class penalty c.
func (r *Regularization) diagonal(c float64) float64 {
	if r.boundBox {
		return 0
	}
	return 0.5 / c
}

// upperBound returns the box bound on alpha for a class penalty c.
func (r *Regularization) upperBound(c float64) float64 {
	if r.boundBox {
		return c
	}
	return math.Inf(1)
}
