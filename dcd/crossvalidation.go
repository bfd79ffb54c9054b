package dcd

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
)

// ParameterSearchResult stores the result of the parameter search
type ParameterSearchResult struct {
	BestC    float64
	BestRate float64
}

// CrossValidation trains nrFold models, each on all samples outside one fold,
// and returns the held-out prediction of every sample. More folds than
// samples degrades to leave-one-out.
func CrossValidation(ctx context.Context, store SampleStore, param *Parameter, nrFold int, opts ...Option) ([]float64, error) {
	solver, err := NewSolver(param, opts...)
	if err != nil {
		return nil, err
	}
	return solver.crossValidation(ctx, store, nrFold)
}

func (s *Solver) crossValidation(ctx context.Context, store SampleStore, nrFold int) ([]float64, error) {
	l, _, err := storeDims(store)
	if err != nil {
		return nil, err
	}
	if nrFold < 2 {
		return nil, errors.Wrapf(ErrInvalidParameter, "n-fold cross validation: n must be >= 2, got %d", nrFold)
	}
	if nrFold > l {
		nrFold = l
		s.logger.WarnContext(ctx, "# folds > # data. Will use # folds = # data instead (i.e., leave-one-out cross validation)")
	}

	perm := newPermutation(s.random, l).next()
	foldStart := make([]int, nrFold+1)
	for i := 0; i <= nrFold; i++ {
		foldStart[i] = i * l / nrFold
	}

	target := make([]float64, l)
	for i := 0; i < nrFold; i++ {
		begin := foldStart[i]
		end := foldStart[i+1]

		train := make([]int, 0, l-(end-begin))
		train = append(train, perm[:begin]...)
		train = append(train, perm[end:]...)
		if len(train) == 0 {
			return nil, errors.Wrap(ErrInvalidSampleStore, "cross validation needs at least two samples")
		}

		subModel, err := s.Train(ctx, SVM_C, newColumnSubset(store, train))
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d", i)
		}

		held, err := PredictStore(subModel, newColumnSubset(store, perm[begin:end]))
		if err != nil {
			return nil, err
		}
		for k, j := range perm[begin:end] {
			target[j] = held[k]
		}
	}
	return target, nil
}

// CrossValidationAccuracy is the fraction of held-out predictions that match.
func CrossValidationAccuracy(store SampleStore, target []float64) float64 {
	y := extractLabels(store)
	if len(y) == 0 || len(y) != len(target) {
		return 0
	}
	correct := 0
	for i := range y {
		if target[i] == float64(y[i]) {
			correct++
		}
	}
	return float64(correct) / float64(len(y))
}

// FindParameterC doubles a shared penalty C = Cp = Cn from startC up to maxC
// and keeps the value with the best cross validation accuracy. startC <= 0
// derives a start value from the data.
func FindParameterC(ctx context.Context, store SampleStore, param *Parameter, nrFold int, startC float64, maxC float64, opts ...Option) (*ParameterSearchResult, error) {
	if _, _, err := storeDims(store); err != nil {
		return nil, err
	}
	if startC <= 0 {
		startC = calcStartC(store, param.Regularization())
	}
	if maxC < startC {
		return nil, errors.Wrapf(ErrInvalidParameter, "max C %g is below start C %g", maxC, startC)
	}

	search := param.clone()
	if err := search.SetC(startC); err != nil {
		return nil, err
	}
	solver, err := NewSolver(search, opts...)
	if err != nil {
		return nil, err
	}

	const ratio = 2.0
	result := &ParameterSearchResult{BestC: startC}
	for c := startC; c <= maxC; c *= ratio {
		solver.param.cp = c
		solver.param.cn = c

		target, err := solver.crossValidation(ctx, store, nrFold)
		if err != nil {
			return nil, errors.Wrapf(err, "C=%g", c)
		}
		rate := CrossValidationAccuracy(store, target)
		if rate > result.BestRate {
			result.BestC = c
			result.BestRate = rate
		}
		solver.logger.InfoContext(ctx, "parameter search step", "log2c", math.Log2(c), "rate", 100.0*rate)
	}
	return result, nil
}

// calcStartC picks a power of two below the smallest useful penalty, based on
// the largest squared norm of an augmented sample.
func calcStartC(store SampleStore, regularization *Regularization) float64 {
	l, nFeatures, _ := storeDims(store)
	buf := make([]float64, nFeatures+1)
	maxXTx := 0.0
	for i := 0; i < l; i++ {
		xi := augmentedColumn(buf, i, store)
		if xTx := operatorDot(xi, xi); xTx > maxXTx {
			maxXTx = xTx
		}
	}

	minC := 1.0 / (float64(l) * maxXTx)
	if regularization == L2_SVM {
		minC /= 2
	}
	return math.Pow(2, math.Floor(math.Log2(minC)))
}
