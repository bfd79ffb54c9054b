package dcd

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// twoPoints is x1 = (1, 0) labelled +1 and x2 = (-1, 0) labelled -1.
func twoPoints(t *testing.T) *mat.Dense {
	t.Helper()
	store, err := NewSampleStore([][]float64{{1, 0}, {-1, 0}}, []float64{1, -1})
	require.NoError(t, err)
	return store
}

// sameInstance is one feature vector carried by both classes.
func sameInstance(t *testing.T) *mat.Dense {
	t.Helper()
	store, err := NewSampleStore([][]float64{{1}, {1}}, []float64{1, -1})
	require.NoError(t, err)
	return store
}

// noisyProblem has overlapping classes so the gap never closes quickly.
func noisyProblem(t *testing.T, n int, seed int64) *mat.Dense {
	t.Helper()
	random := rand.New(rand.NewSource(seed))
	features := make([][]float64, n)
	labels := make([]float64, n)
	for i := range features {
		features[i] = []float64{random.NormFloat64(), random.NormFloat64(), random.NormFloat64()}
		if features[i][0]+2*random.NormFloat64() > 0 {
			labels[i] = 1
		} else {
			labels[i] = -1
		}
	}
	store, err := NewSampleStore(features, labels)
	require.NoError(t, err)
	return store
}

// separated is a two-feature problem split by the sign of x1.
func separated(t *testing.T) *mat.Dense {
	t.Helper()
	store, err := NewSampleStore(
		[][]float64{{2, 0.5}, {3, -0.5}, {2.5, 1}, {3.5, 0}, {-2, 0.5}, {-3, -0.5}, {-2.5, 1}, {-3.5, 0}},
		[]float64{1, 1, 1, 1, -1, -1, -1, -1},
	)
	require.NoError(t, err)
	return store
}

func newTestSolver(t *testing.T, param *Parameter, opts ...Option) *Solver {
	t.Helper()
	solver, err := NewSolver(param, append([]Option{WithLogger(quietLogger())}, opts...)...)
	require.NoError(t, err)
	return solver
}
