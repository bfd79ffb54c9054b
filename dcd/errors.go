package dcd

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidParameter marks a parameter bundle that cannot start training.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidSampleStore marks a data matrix without features, labels or samples.
	ErrInvalidSampleStore = errors.New("invalid sample store")
	// ErrUnsupportedLearner is returned for learner types other than SVM_C.
	ErrUnsupportedLearner = errors.New("unsupported learner type")
	// ErrTrainingStopped marks a run aborted between epochs by Stop or a
	// cancelled context. The partially optimized model is still returned.
	ErrTrainingStopped = errors.New("training stopped")
	// ErrMalformedInput marks unparsable dataset text.
	ErrMalformedInput = errors.New("malformed input")
)
