package dcd

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossValidation(t *testing.T) {
	store := separated(t)
	target, err := CrossValidation(context.Background(), store, DefaultParameter(), 4, WithLogger(quietLogger()))
	require.NoError(t, err)

	require.Len(t, target, 8)
	for _, v := range target {
		assert.Contains(t, []float64{-1, 1}, v)
	}
	rate := CrossValidationAccuracy(store, target)
	assert.GreaterOrEqual(t, rate, 0.0)
	assert.LessOrEqual(t, rate, 1.0)
}

func TestCrossValidationLeaveOneOut(t *testing.T) {
	store := separated(t)
	target, err := CrossValidation(context.Background(), store, DefaultParameter(), 100, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Len(t, target, 8)
	assert.Equal(t, 1.0, CrossValidationAccuracy(store, target))
}

func TestCrossValidationRejectsBadFolds(t *testing.T) {
	_, err := CrossValidation(context.Background(), separated(t), DefaultParameter(), 1, WithLogger(quietLogger()))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = CrossValidation(context.Background(), nil, DefaultParameter(), 2, WithLogger(quietLogger()))
	assert.ErrorIs(t, err, ErrInvalidSampleStore)
}

func TestCrossValidationAccuracy(t *testing.T) {
	store := twoPoints(t)
	assert.Equal(t, 1.0, CrossValidationAccuracy(store, []float64{1, -1}))
	assert.Equal(t, 0.5, CrossValidationAccuracy(store, []float64{1, 1}))
	assert.Equal(t, 0.0, CrossValidationAccuracy(store, []float64{1}))
}

func TestFindParameterC(t *testing.T) {
	param := DefaultParameter()
	result, err := FindParameterC(context.Background(), separated(t), param, 2, 0.25, 4, WithLogger(quietLogger()))
	require.NoError(t, err)

	assert.Greater(t, result.BestRate, 0.0)
	assert.GreaterOrEqual(t, result.BestC, 0.25)
	assert.LessOrEqual(t, result.BestC, 4.0)
	assert.Equal(t, 1.0, param.Cp(), "caller's parameter is not modified")

	_, err = FindParameterC(context.Background(), separated(t), param, 2, 8, 4, WithLogger(quietLogger()))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestFindParameterCWithoutACorrectPrediction(t *testing.T) {
	// each held-out sample is predicted with the label of its twin
	result, err := FindParameterC(context.Background(), sameInstance(t), DefaultParameter(), 2, 0.25, 1, WithLogger(quietLogger()))
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.BestRate)
	assert.Equal(t, 0.25, result.BestC)
}

func TestCalcStartC(t *testing.T) {
	store := twoPoints(t)
	assert.Equal(t, 0.25, calcStartC(store, L1_SVM))
	assert.Equal(t, 0.125, calcStartC(store, L2_SVM))

	c := calcStartC(separated(t), L1_SVM)
	assert.Equal(t, math.Floor(math.Log2(c)), math.Log2(c), "a power of two")
}
