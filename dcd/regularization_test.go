package dcd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRegularization(t *testing.T) {
	for _, r := range RegularizationValues() {
		assert.Equal(t, r, GetRegularizationById(r.Id()))
		assert.Equal(t, r, GetRegularizationByName(r.Name()))
		assert.Equal(t, r, GetRegularizationByName(r.Alias()))
	}
	assert.Equal(t, L2_SVM, GetRegularizationByName(" L2 "))
	assert.Equal(t, L1_SVM, GetRegularizationByName("l2r_l1loss_svc_dual"))
	assert.Nil(t, GetRegularizationByName("l3"))
	assert.Nil(t, GetRegularizationById(42))
	assert.Equal(t, "L2R_L1LOSS_SVC_DUAL", L1_SVM.String())
}

func TestRegularizationBounds(t *testing.T) {
	assert.Equal(t, 0.0, L1_SVM.diagonal(4))
	assert.Equal(t, 4.0, L1_SVM.upperBound(4))

	assert.Equal(t, 0.125, L2_SVM.diagonal(4))
	assert.True(t, math.IsInf(L2_SVM.upperBound(4), 1))
}

func TestLearnerTypes(t *testing.T) {
	assert.Len(t, LearnerTypeValues(), 3)
	assert.True(t, SVM_C.IsSupported())
	assert.False(t, SVM_R.IsSupported())
	assert.False(t, SVM_DE.IsSupported())
	assert.Equal(t, "SVM_C", SVM_C.Name())
	assert.Equal(t, 1, SVM_R.Id())
}

func TestClassBounds(t *testing.T) {
	b := newClassBounds(L1_SVM, 10, 1)
	assert.Equal(t, 10.0, b.upperBound[2])
	assert.Equal(t, 1.0, b.upperBound[0])
	assert.Equal(t, [3]float64{}, b.diag)

	b = newClassBounds(L2_SVM, 10, 1)
	assert.Equal(t, 0.05, b.diag[2])
	assert.Equal(t, 0.5, b.diag[0])
	assert.True(t, math.IsInf(b.upperBound[0], 1))
	assert.True(t, math.IsInf(b.upperBound[2], 1))

	y := []int8{1, -1}
	assert.Equal(t, 2, GETI(y, 0))
	assert.Equal(t, 0, GETI(y, 1))
}
