package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"

	"github.com/CSMONE/mlpack/dcd"
	"github.com/CSMONE/mlpack/internal/config"
	"github.com/CSMONE/mlpack/internal/logging"
)

const usage = `Usage: train [options] [training_set_file]
Trains a linear two-class SVM by dual coordinate descent.

options:
`

func parseFlags(args []string, stderr io.Writer) (*pflag.FlagSet, error) {
	fs := pflag.NewFlagSet("train", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 && !fs.Changed("input") {
		if err := fs.Set("input", fs.Arg(0)); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) error {
	fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	configFile, _ := fs.GetString("config")
	cfg, err := config.Load(configFile, fs)
	if err != nil {
		return err
	}

	logCfg := cfg.Logging("train")
	logger := logging.New(logCfg)
	if logCfg.File == "" {
		logger = logging.NewWithWriter(stderr, logCfg)
	}

	cSpecified := fs.Changed("c") || fs.Changed("cp")
	training, err := NewTraining(cfg, cSpecified, logger, stdout)
	if err != nil {
		return err
	}
	if err := training.ReadProblem(); err != nil {
		return err
	}

	switch {
	case cfg.Train.FindC:
		_, err = training.DoFindParameterC(ctx)
	case cfg.Train.Folds > 0:
		_, err = training.DoCrossValidation(ctx)
	default:
		_, err = training.DoTrain(ctx)
	}
	if metricsErr := training.WriteMetrics(); metricsErr != nil {
		err = errors.CombineErrors(err, metricsErr)
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "train: %v\n", err)
		if errors.Is(err, dcd.ErrTrainingStopped) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}
