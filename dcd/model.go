package dcd

import (
	"github.com/cockroachdb/errors"
)

// Model is the result of a training run
type Model struct {
	W              []float64 // feature weights, length NumFeatures
	Bias           float64
	NumFeatures    int
	Regularization *Regularization
	Kernel         Kernel
	State          State
	Epochs         int
	Diagnostics    *Diagnostics // nil unless diagnostics were enabled
}

// GetFeatureWeights returns a copy of the weights without the bias.
func (model *Model) GetFeatureWeights() []float64 {
	return append([]float64(nil), model.W...)
}

// Converged reports whether the accuracy target was met.
func (model *Model) Converged() bool {
	return model.State == Converged
}

// DecisionValue returns w·x + b. Features beyond NumFeatures are ignored,
// the dimension of testing data may exceed that of training.
func DecisionValue(model *Model, x []float64) float64 {
	n := len(x)
	if n > model.NumFeatures {
		n = model.NumFeatures
	}
	return operatorDot(model.W[:n], x[:n]) + model.Bias
}

// Predict uses the model to predict the label, +1 or -1, of x
func Predict(model *Model, x []float64) float64 {
	if DecisionValue(model, x) > 0 {
		return 1
	}
	return -1
}

// PredictStore predicts every sample of a store. The label row, if present,
// is ignored.
func PredictStore(model *Model, store SampleStore) ([]float64, error) {
	nSamples, nFeatures, err := storeDims(store)
	if err != nil {
		return nil, err
	}
	buf := make([]float64, nFeatures+1)
	out := make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		xi := augmentedColumn(buf, i, store)
		out[i] = Predict(model, xi[:nFeatures])
	}
	return out, nil
}

// Accuracy returns the fraction of samples of a labelled store predicted correctly.
func Accuracy(model *Model, store SampleStore) (float64, error) {
	if model == nil {
		return 0, errors.New("model is nil")
	}
	predictions, err := PredictStore(model, store)
	if err != nil {
		return 0, err
	}
	y := extractLabels(store)
	correct := 0
	for i, p := range predictions {
		if p == float64(y[i]) {
			correct++
		}
	}
	return float64(correct) / float64(len(y)), nil
}
