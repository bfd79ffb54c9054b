package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CSMONE/mlpack/dcd"
)

func TestObserverCountsEpochs(t *testing.T) {
	m := New("test")
	observe := m.Observer()

	observe(dcd.EpochStats{Epoch: 1, Gap: 2, Updates: 5})
	observe(dcd.EpochStats{Epoch: 2, Gap: 0.5, Updates: 3})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Epochs))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.Updates))
	assert.Equal(t, 0.5, testutil.ToFloat64(m.Gap))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.State.WithLabelValues("RUNNING")))
}

func TestRecordModel(t *testing.T) {
	m := New("test")
	m.RecordModel(&dcd.Model{
		State:       dcd.Converged,
		Diagnostics: &dcd.Diagnostics{Objective: -0.5, SupportVectors: 2, Valid: true},
	})

	assert.Equal(t, 0.0, testutil.ToFloat64(m.State.WithLabelValues("RUNNING")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.State.WithLabelValues("CONVERGED")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SupportVectors))
	assert.Equal(t, -0.5, testutil.ToFloat64(m.Objective))

	m.RecordAccuracy("test", 0.75)
	assert.Equal(t, 0.75, testutil.ToFloat64(m.Accuracy.WithLabelValues("test")))
}

func TestWriteTextfile(t *testing.T) {
	m := New("test")
	m.Observer()(dcd.EpochStats{Epoch: 1, Gap: 1, Updates: 1})

	path := filepath.Join(t.TempDir(), "dcd.prom")
	require.NoError(t, m.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "dcd_epochs_total")
	assert.Contains(t, string(content), `run="test"`)
}
