package dcd

import (
	"context"
	"log/slog"
	"math"
	"math/rand"

	"github.com/cockroachdb/errors"
	"github.com/tevino/abool"

	"github.com/CSMONE/mlpack/internal/fsm"
)

const (
	// AlphaZero is the distance to a bound under which alpha counts as sitting on it.
	AlphaZero = 1.0e-7

	// projected gradients at or below this magnitude leave the coordinate alone
	updateThreshold = 1.0e-12
)

// EpochStats summarizes one pass of the inner loop.
type EpochStats struct {
	Epoch   int
	PGMax   float64
	PGMin   float64
	Gap     float64
	Updates int
}

// EpochObserver is called after every epoch with its statistics.
type EpochObserver func(EpochStats)

// Option configures a Solver
type Option func(*Solver)

// WithLogger sets the logger for progress and termination notices.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRand injects the permutation source. It overrides Parameter.Seed.
func WithRand(random *rand.Rand) Option {
	return func(s *Solver) {
		if random != nil {
			s.random = random
		}
	}
}

// WithKernel sets the kernel used by the coordinate update. Only LinearKernel
// is accepted by NewSolver.
func WithKernel(kernel Kernel) Option {
	return func(s *Solver) {
		if kernel != nil {
			s.kernel = kernel
		}
	}
}

// WithObserver adds an epoch observer.
func WithObserver(observer EpochObserver) Option {
	return func(s *Solver) {
		if observer != nil {
			s.observers = append(s.observers, observer)
		}
	}
}

// Solver trains a linear two-class SVM by dual coordinate descent
// (Hsieh et al., ICML 2008). It owns alpha and w for the duration of a run
// and borrows the sample store read-only.
type Solver struct {
	param     *Parameter
	kernel    Kernel
	random    *rand.Rand
	logger    *slog.Logger
	observers []EpochObserver
	stop      *abool.AtomicBool

	store     SampleStore
	nSamples  int
	nFeatures int
	y         []int8
	alpha     []float64
	w         []float64 // [w, b]
	qd        []float64
	bounds    classBounds
	buf       []float64

	perm    *permutation
	monitor *convergenceMonitor
	machine *fsm.Machine[State, event]
	epoch   int
	history []EpochStats

	diagnostics *Diagnostics
}

// NewSolver validates param and returns a solver ready for Train.
func NewSolver(param *Parameter, opts ...Option) (*Solver, error) {
	if param == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "parameter is nil")
	}
	if err := param.Validate(); err != nil {
		return nil, err
	}

	s := &Solver{
		param:  param.clone(),
		kernel: LinearKernel{},
		logger: slog.Default().With("component", "dcd"),
		stop:   abool.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !isLinear(s.kernel) {
		return nil, errors.Wrapf(ErrInvalidParameter, "kernel %T: the primal weight update needs the linear kernel", s.kernel)
	}
	if s.random == nil {
		s.random = rand.New(rand.NewSource(s.param.seed))
	}
	return s, nil
}

// Init binds the solver to a store: labels, zeroed alpha and w, and the
// diagonal terms. Train calls it; calling it directly allows stepping epochs
// by hand with RunEpoch.
func (s *Solver) Init(learner *LearnerType, store SampleStore) error {
	if learner == nil || !learner.IsSupported() {
		name := "<nil>"
		if learner != nil {
			name = learner.Name()
		}
		return errors.Wrapf(ErrUnsupportedLearner, "learner %s", name)
	}
	nSamples, nFeatures, err := storeDims(store)
	if err != nil {
		return err
	}

	s.store = store
	s.nSamples = nSamples
	s.nFeatures = nFeatures
	s.y = extractLabels(store)
	s.alpha = make([]float64, nSamples)
	s.w = make([]float64, nFeatures+1)
	s.buf = make([]float64, nFeatures+1)
	s.bounds = newClassBounds(s.param.regularization, s.param.cp, s.param.cn)
	s.qd = precomputeDiagonal(store, s.y, s.bounds, s.kernel, s.buf)

	s.perm = newPermutation(s.random, nSamples)
	s.monitor = newConvergenceMonitor(s.param.accuracy)
	s.machine = newStateMachine(s.logger)
	s.stop.UnSet()
	s.epoch = 0
	s.history = s.history[:0]
	s.diagnostics = nil
	return nil
}

// Stop asks a running Train to finish after the current epoch. Init clears
// the request, so a later Train starts fresh.
func (s *Solver) Stop() {
	s.stop.Set()
}

// Train runs epochs until the gap test passes, the epoch budget is spent or
// a stop is requested. The model is returned in every terminal state; a stop
// also returns an error marked ErrTrainingStopped.
func (s *Solver) Train(ctx context.Context, learner *LearnerType, store SampleStore) (*Model, error) {
	if err := s.Init(learner, store); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "training started",
		"samples", s.nSamples,
		"features", s.nFeatures,
		"regularization", s.param.regularization.Name(),
		"cp", s.param.cp,
		"cn", s.param.cn,
	)

	var stopCause error
	for {
		if cause := s.stopCause(ctx); cause != nil {
			stopCause = cause
			if err := s.machine.Trigger(ctx, eventStopRequested); err != nil {
				return nil, err
			}
			break
		}

		s.RunEpoch()

		if s.monitor.converged() {
			if err := s.machine.Trigger(ctx, eventGapReached); err != nil {
				return nil, err
			}
			break
		}
		if s.epoch >= s.param.maxEpochs {
			if err := s.machine.Trigger(ctx, eventEpochBudgetSpent); err != nil {
				return nil, err
			}
			break
		}
	}

	switch s.State() {
	case Converged:
		s.logger.InfoContext(ctx, "optimization finished, accuracy reached",
			"accuracy", s.param.accuracy, "epochs", s.epoch)
	case EpochLimitReached:
		s.logger.WarnContext(ctx, "reaching max number of epochs, accuracy not met",
			"epochs", s.param.maxEpochs, "accuracy", s.param.accuracy, "gap", s.monitor.gap())
	case Stopped:
		s.logger.WarnContext(ctx, "optimization stopped", "epochs", s.epoch, "cause", stopCause)
	}

	if s.param.objValue {
		d := s.ComputeDiagnostics()
		s.diagnostics = &d
		if d.Valid {
			s.logger.InfoContext(ctx, "objective value", "objective", d.Objective, "nSV", d.SupportVectors)
		}
	}

	model := s.model()
	if stopCause != nil {
		return model, errors.Mark(errors.Wrapf(stopCause, "after %d epochs", s.epoch), ErrTrainingStopped)
	}
	return model, nil
}

func (s *Solver) stopCause(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.stop.IsSet() {
		return ErrTrainingStopped
	}
	return nil
}

// RunEpoch performs one epoch: a fresh permutation, maxIters coordinate steps
// (one pass when maxIters is 0) and the gap bookkeeping. It does not evaluate
// the stopping rule.
func (s *Solver) RunEpoch() EpochStats {
	index := s.perm.next()
	iters := s.param.maxIters
	if iters == 0 {
		iters = s.nSamples
	}

	s.monitor.reset()
	updates := 0
	for t := 0; t < iters; t++ {
		if s.updateCoordinate(index[t%s.nSamples]) {
			updates++
		}
	}
	s.epoch++

	stats := EpochStats{
		Epoch:   s.epoch,
		PGMax:   s.monitor.pgMaxNew,
		PGMin:   s.monitor.pgMinNew,
		Gap:     s.monitor.gap(),
		Updates: updates,
	}
	s.history = append(s.history, stats)

	s.logger.Debug("epoch finished",
		"epoch", stats.Epoch, "gap", stats.Gap, "pgMax", stats.PGMax, "pgMin", stats.PGMin, "updates", updates)

	for _, observe := range s.observers {
		observe(stats)
	}
	return stats
}

// updateCoordinate minimizes the dual along alpha[i] in closed form and keeps
// w in step. It reports whether alpha[i] was touched.
func (s *Solver) updateCoordinate(i int) bool {
	xi := augmentedColumn(s.buf, i, s.store)
	yi := s.y[i]
	slot := GETI(s.y, i)

	G := float64(yi)*s.kernel.Eval(s.w, xi) - 1
	C := s.bounds.upperBound[slot]
	G += s.alpha[i] * s.bounds.diag[slot]

	PG := projectedGradient(G, s.alpha[i], C)
	s.monitor.observe(PG)

	if math.Abs(PG) <= updateThreshold {
		return false
	}

	alphaOld := s.alpha[i]
	s.alpha[i] = math.Min(math.Max(alphaOld-G/s.qd[i], 0.0), C)
	d := (s.alpha[i] - alphaOld) * float64(yi)
	operatorAxpy(d, xi, s.w)
	return true
}

// projectedGradient clips G at an active bound of [0, C].
func projectedGradient(G float64, alpha float64, C float64) float64 {
	if alpha <= AlphaZero {
		return math.Min(G, 0)
	}
	if C-alpha <= AlphaZero {
		return math.Max(G, 0)
	}
	return G
}

// State returns the current state; Running until a run terminates.
func (s *Solver) State() State {
	if s.machine == nil {
		return Running
	}
	return s.machine.Current()
}

// Epochs is the number of epochs run since Init.
func (s *Solver) Epochs() int {
	return s.epoch
}

// History returns the statistics of every epoch since Init.
func (s *Solver) History() []EpochStats {
	return append([]EpochStats(nil), s.history...)
}

// Gap returns the optimality gap of the last epoch.
func (s *Solver) Gap() float64 {
	if s.monitor == nil {
		return math.Inf(1)
	}
	return s.monitor.gap()
}

// Alpha returns a copy of the dual variables.
func (s *Solver) Alpha() []float64 {
	return append([]float64(nil), s.alpha...)
}

// UpperBound returns the box bound on alpha[i]; +Inf under L2-loss.
func (s *Solver) UpperBound(i int) float64 {
	return s.bounds.upperBound[GETI(s.y, i)]
}

// W returns a copy of the feature weights, without the bias.
func (s *Solver) W() []float64 {
	if s.w == nil {
		return nil
	}
	return append([]float64(nil), s.w[:s.nFeatures]...)
}

// Bias returns the last component of the augmented weight vector.
func (s *Solver) Bias() float64 {
	if s.w == nil {
		return 0
	}
	return s.w[s.nFeatures]
}

// Kernel returns the kernel used by the coordinate update.
func (s *Solver) Kernel() Kernel {
	return s.kernel
}

// Diagnostics returns the objective computed after training, or nil when
// diagnostics were not enabled.
func (s *Solver) Diagnostics() *Diagnostics {
	return s.diagnostics
}

func (s *Solver) model() *Model {
	return &Model{
		W:              s.W(),
		Bias:           s.Bias(),
		NumFeatures:    s.nFeatures,
		Regularization: s.param.regularization,
		Kernel:         s.kernel,
		State:          s.State(),
		Epochs:         s.epoch,
		Diagnostics:    s.diagnostics,
	}
}

// Train builds a solver from param and trains it on store.
func Train(ctx context.Context, learner *LearnerType, store SampleStore, param *Parameter, opts ...Option) (*Model, error) {
	solver, err := NewSolver(param, opts...)
	if err != nil {
		return nil, err
	}
	return solver.Train(ctx, learner, store)
}
