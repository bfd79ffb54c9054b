// Package report renders training histories.
package report

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/CSMONE/mlpack/dcd"
)

// ErrEmptyHistory is returned when there is no finite epoch to draw.
var ErrEmptyHistory = errors.New("history has no plottable epochs")

// GapPoints converts a history to (epoch, gap) points, skipping epochs
// with a non-finite gap.
func GapPoints(history []dcd.EpochStats) plotter.XYs {
	pts := make(plotter.XYs, 0, len(history))
	for _, stats := range history {
		if math.IsNaN(stats.Gap) || math.IsInf(stats.Gap, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(stats.Epoch), Y: stats.Gap})
	}
	return pts
}

// PlotGap draws the optimality gap per epoch and saves it to path. The
// image format follows the file extension.
func PlotGap(history []dcd.EpochStats, path string) error {
	pts := GapPoints(history)
	if len(pts) == 0 {
		return ErrEmptyHistory
	}

	p := plot.New()
	p.Title.Text = "Dual coordinate descent"
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "projected gradient gap"
	p.Add(plotter.NewGrid())

	if err := plotutil.AddLinePoints(p, "gap", pts); err != nil {
		return errors.Wrap(err, "add gap series")
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}
