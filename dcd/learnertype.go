package dcd

// SVM_C : two-class support vector classification
var SVM_C = NewLearnerType(0, "SVM_C", true)

// SVM_R : support vector regression, not trainable by this solver
var SVM_R = NewLearnerType(1, "SVM_R", false)

// SVM_DE : support vector density estimation, not trainable by this solver
var SVM_DE = NewLearnerType(2, "SVM_DE", false)

var learnerTypeValues = []*LearnerType{
	SVM_C,
	SVM_R,
	SVM_DE,
}

// LearnerType selects which SVM learner the training run builds.
type LearnerType struct {
	id        int
	name      string
	supported bool
}

// NewLearnerType returns a new LearnerType based on input fields
func NewLearnerType(id int, name string, supported bool) *LearnerType {
	return &LearnerType{
		id:        id,
		name:      name,
		supported: supported,
	}
}

// LearnerTypeValues gives a list of LearnerTypes
func LearnerTypeValues() []*LearnerType {
	return learnerTypeValues
}

// Id returns the numeric identifier.
func (lt *LearnerType) Id() int {
	return lt.id
}

// Name is nameless
func (lt *LearnerType) Name() string {
	return lt.name
}

// IsSupported reports whether the dual coordinate descent solver can train it.
func (lt *LearnerType) IsSupported() bool {
	return lt.supported
}
