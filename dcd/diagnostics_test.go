package dcd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsTwoPoints(t *testing.T) {
	param := DefaultParameter()
	param.SetObjValue(true)

	solver := newTestSolver(t, param)
	model, err := solver.Train(context.Background(), SVM_C, twoPoints(t))
	require.NoError(t, err)

	require.NotNil(t, model.Diagnostics)
	assert.True(t, model.Diagnostics.Valid)
	assert.InDelta(t, -0.5, model.Diagnostics.Objective, 1e-12)
	assert.Equal(t, 2, model.Diagnostics.SupportVectors)
	assert.Equal(t, model.Diagnostics, solver.Diagnostics())
}

func TestDiagnosticsDisabled(t *testing.T) {
	solver := newTestSolver(t, DefaultParameter())
	model, err := solver.Train(context.Background(), SVM_C, twoPoints(t))
	require.NoError(t, err)

	assert.Nil(t, model.Diagnostics)
	assert.Nil(t, solver.Diagnostics())
}

func TestDiagnosticsLeaveModelUntouched(t *testing.T) {
	solver := newTestSolver(t, DefaultParameter())
	_, err := solver.Train(context.Background(), SVM_C, sameInstance(t))
	require.NoError(t, err)

	alpha := solver.Alpha()
	w := solver.W()
	d := solver.ComputeDiagnostics()

	assert.True(t, d.Valid)
	assert.Equal(t, 2, d.SupportVectors)
	assert.Equal(t, alpha, solver.Alpha())
	assert.Equal(t, w, solver.W())
}

func TestDiagnosticsBeforeInit(t *testing.T) {
	solver := newTestSolver(t, DefaultParameter())
	assert.False(t, solver.ComputeDiagnostics().Valid)
}

func TestDiagnosticsL2Loss(t *testing.T) {
	param := DefaultParameter()
	require.NoError(t, param.SetRegularization(L2_SVM))

	solver := newTestSolver(t, param)
	require.NoError(t, solver.Init(SVM_C, twoPoints(t)))
	solver.RunEpoch()

	alpha := solver.Alpha()
	w := append(solver.W(), solver.Bias())
	expected := operatorDot(w, w)
	for _, a := range alpha {
		expected += a * (a*0.5 - 2)
	}

	d := solver.ComputeDiagnostics()
	assert.True(t, d.Valid)
	assert.InDelta(t, expected/2, d.Objective, 1e-12)
}
