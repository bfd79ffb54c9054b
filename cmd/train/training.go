package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/CSMONE/mlpack/dcd"
	"github.com/CSMONE/mlpack/internal/config"
	"github.com/CSMONE/mlpack/internal/metrics"
	"github.com/CSMONE/mlpack/internal/report"
)

// defaultFolds is used by the C search when no fold count is given.
const defaultFolds = 5

// Training is the struct command to hold one run of the trainer
type Training struct {
	Config     *config.Config
	CSpecified bool
	Param      *dcd.Parameter
	Prob       *mat.Dense
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	Out        io.Writer
}

// NewTraining creates a new training from a loaded configuration
func NewTraining(cfg *config.Config, cSpecified bool, logger *slog.Logger, out io.Writer) (*Training, error) {
	param, err := cfg.Parameter()
	if err != nil {
		return nil, err
	}
	return &Training{
		Config:     cfg,
		CSpecified: cSpecified,
		Param:      param,
		Logger:     logger,
		Metrics:    metrics.New(filepath.Base(cfg.Input)),
		Out:        out,
	}, nil
}

// ReadProblem reads the input file into the training problem field
func (t *Training) ReadProblem() error {
	prob, err := dcd.ReadProblemFile(t.Config.Input, 0)
	if err != nil {
		return err
	}
	t.Prob = prob
	r, c := prob.Dims()
	t.Logger.Info("problem loaded", "file", t.Config.Input, "samples", c, "features", r-1)
	return nil
}

func (t *Training) options() []dcd.Option {
	return []dcd.Option{
		dcd.WithLogger(t.Logger.With("component", "dcd")),
		dcd.WithObserver(t.Metrics.Observer()),
	}
}

// DoFindParameterC searches for the best shared penalty C
func (t *Training) DoFindParameterC(ctx context.Context) (*dcd.ParameterSearchResult, error) {
	nrFold := t.Config.Train.Folds
	if nrFold == 0 {
		nrFold = defaultFolds
	}
	startC := -1.0
	if t.CSpecified {
		startC = t.Param.Cp()
	}

	t.Logger.InfoContext(ctx, "doing parameter search", "folds", nrFold, "maxC", t.Config.Train.MaxC)
	result, err := dcd.FindParameterC(ctx, t.Prob, t.Param, nrFold, startC, t.Config.Train.MaxC, t.options()...)
	if err != nil {
		return nil, err
	}
	t.Metrics.RecordAccuracy("cross_validation", result.BestRate)
	fmt.Fprintf(t.Out, "Best C = %g  CV accuracy = %g%%\n", result.BestC, 100.0*result.BestRate)
	return result, nil
}

// DoCrossValidation does just that
func (t *Training) DoCrossValidation(ctx context.Context) (float64, error) {
	start := time.Now()
	target, err := dcd.CrossValidation(ctx, t.Prob, t.Param, t.Config.Train.Folds, t.options()...)
	if err != nil {
		return 0, err
	}
	t.Logger.InfoContext(ctx, "cross validation finished", "folds", t.Config.Train.Folds, "elapsed", time.Since(start))

	rate := dcd.CrossValidationAccuracy(t.Prob, target)
	t.Metrics.RecordAccuracy("cross_validation", rate)
	fmt.Fprintf(t.Out, "Cross Validation Accuracy = %g%%\n", 100.0*rate)
	return rate, nil
}

// DoTrain trains on the whole problem and reports the model. A stopped run
// still reports the partial model before its error is returned.
func (t *Training) DoTrain(ctx context.Context) (*dcd.Model, error) {
	solver, err := dcd.NewSolver(t.Param, t.options()...)
	if err != nil {
		return nil, err
	}

	model, trainErr := solver.Train(ctx, dcd.SVM_C, t.Prob)
	if model == nil {
		return nil, trainErr
	}
	t.Metrics.RecordModel(model)
	t.printModel(model)

	if t.Config.Test != "" {
		if err := t.evaluate(model, t.Config.Test); err != nil {
			return model, errors.CombineErrors(trainErr, err)
		}
	}
	if plotFile := t.Config.Output.Plot; plotFile != "" {
		if err := report.PlotGap(solver.History(), plotFile); err != nil {
			t.Logger.WarnContext(ctx, "gap plot not written", "file", plotFile, "error", err)
		}
	}
	return model, trainErr
}

func (t *Training) evaluate(model *dcd.Model, fileName string) error {
	testProb, err := dcd.ReadProblemFile(fileName, model.NumFeatures)
	if err != nil {
		return err
	}
	rate, err := dcd.Accuracy(model, testProb)
	if err != nil {
		return err
	}
	t.Metrics.RecordAccuracy("test", rate)
	_, c := testProb.Dims()
	fmt.Fprintf(t.Out, "Accuracy = %g%% (%d samples)\n", 100.0*rate, c)
	return nil
}

func (t *Training) printModel(model *dcd.Model) {
	fmt.Fprintf(t.Out, "solver_type %s\n", model.Regularization.Name())
	fmt.Fprintf(t.Out, "state %s epochs %d\n", model.State, model.Epochs)
	fmt.Fprintf(t.Out, "nr_feature %d\n", model.NumFeatures)
	fmt.Fprintf(t.Out, "bias %g\n", model.Bias)
	if d := model.Diagnostics; d != nil && d.Valid {
		fmt.Fprintf(t.Out, "obj %g nSV %d\n", d.Objective, d.SupportVectors)
	}
	fmt.Fprintln(t.Out, "w")
	for _, w := range model.W {
		fmt.Fprintf(t.Out, "%g\n", w)
	}
}

// WriteMetrics writes the metrics file if one is configured.
func (t *Training) WriteMetrics() error {
	if t.Config.Output.MetricsFile == "" {
		return nil
	}
	return t.Metrics.WriteTextfile(t.Config.Output.MetricsFile)
}
