package engine

import (
	"github.com/sirupsen/logrus"

	"randsys/domain/core"
	"randsys/domain/source"
	"randsys/domain/stats"
	apperrors "randsys/internal/errors"
)

// StatsEngine drives randomness sources through repeated independent trials.
//
// Every trial starts with src.Reset(), so a source left dirty by an earlier
// search or measurement is always measured from its fresh state.
type StatsEngine struct {
	logger logrus.FieldLogger
}

// NewStatsEngine creates a new statistical engine. A nil logger falls back to
// the logrus standard logger.
func NewStatsEngine(logger logrus.FieldLogger) *StatsEngine {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &StatsEngine{logger: logger}
}

// Measure returns the per-step entropy fraction and count variance of src,
// averaged over trials. Entropy at step i is read before the i-th draw;
// variance at step i is taken after it.
func (e *StatsEngine) Measure(src source.Source, steps, trials int) (stats.Trajectory, error) {
	if err := validateRun(steps, trials); err != nil {
		return stats.Trajectory{}, err
	}

	n := src.AlphabetSize()
	entropies := make([]float64, steps)
	variances := make([]float64, steps)
	counts := make([]int, n)

	for trial := 0; trial < trials; trial++ {
		src.Reset()
		clear(counts)

		for step := 0; step < steps; step++ {
			entropies[step] += src.Entropy()
			counts[src.Sample()]++
			variances[step] += stats.Variance(counts)
		}
	}

	// Normalize: entropy to a fraction of ln(n), variance to a plain average
	for step := range entropies {
		entropies[step] = stats.EntropyFraction(entropies[step], trials, n)
		variances[step] /= float64(trials)
	}

	desc := source.Describe(src)
	e.logger.WithFields(logrus.Fields{
		"source": desc.String(),
		"steps":  steps,
		"trials": trials,
	}).Debug("measured trajectory")

	return stats.Trajectory{
		Source:   desc,
		Steps:    steps,
		Trials:   trials,
		Entropy:  entropies,
		Variance: variances,
	}, nil
}

// MeasureLabeled is Measure with a row label attached for serialization
func (e *StatsEngine) MeasureLabeled(label core.Label, src source.Source, steps, trials int) (stats.Trajectory, error) {
	traj, err := e.Measure(src, steps, trials)
	if err != nil {
		return traj, apperrors.Wrapf(err, "measuring %s", label)
	}
	traj.Label = label
	return traj, nil
}

// Score collapses trials into two scalars: the entropy fraction averaged over
// every step of every trial, and the count variance after the last step
// averaged over trials.
func (e *StatsEngine) Score(src source.Source, steps, trials int) (entropyFraction, variance float64, err error) {
	if err := validateRun(steps, trials); err != nil {
		return 0, 0, err
	}

	n := src.AlphabetSize()
	counts := make([]int, n)
	entropySum, varianceSum := 0.0, 0.0

	for trial := 0; trial < trials; trial++ {
		src.Reset()
		clear(counts)

		for step := 0; step < steps; step++ {
			entropySum += src.Entropy()
			counts[src.Sample()]++
		}
		varianceSum += stats.Variance(counts)
	}

	return stats.EntropyFraction(entropySum, trials*steps, n), varianceSum / float64(trials), nil
}

func validateRun(steps, trials int) error {
	if steps < 1 {
		return runError(core.NewRunError("steps", steps))
	}
	if trials < 1 {
		return runError(core.NewRunError("trials", trials))
	}
	return nil
}

func runError(cause error) error {
	return &apperrors.AppError{
		Code:    apperrors.CodeInvalidInput,
		Message: "invalid measurement run",
		Cause:   cause,
	}
}
