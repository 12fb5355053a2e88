// Package search picks the best-balanced source out of a candidate set.
package search

import (
	"github.com/sirupsen/logrus"

	"randsys/adapters/stats/engine"
	"randsys/domain/core"
	"randsys/domain/source"
	"randsys/domain/stats"
	apperrors "randsys/internal/errors"
)

// Searcher scores candidates with the stats engine and selects the one with
// the lowest final count variance among those random enough.
type Searcher struct {
	engine *engine.StatsEngine
	logger logrus.FieldLogger
}

// NewSearcher creates a searcher. A nil engine gets a fresh one sharing the logger.
func NewSearcher(eng *engine.StatsEngine, logger logrus.FieldLogger) *Searcher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if eng == nil {
		eng = engine.NewStatsEngine(logger)
	}
	return &Searcher{engine: eng, logger: logger}
}

// SelectBest scores every candidate over trials of steps draws and returns
// the qualifying candidate with the lowest average final variance.
//
// A candidate qualifies when its average entropy fraction is at least
// minEntropy; candidates below the floor are never compared on variance. A
// qualifying candidate replaces the current best when its variance is less
// than or equal to the best so far, so among exact ties the later candidate
// wins. When nothing qualifies the result has a nil Best and zero Variance;
// that is an outcome, not an error.
//
// Candidates are exercised in place and left in a used state. Reset a
// selected source before relying on its state; StatsEngine.Measure does so at
// every trial.
func (s *Searcher) SelectBest(candidates []source.Source, minEntropy float64, steps, trials int) (stats.SearchResult, error) {
	result := stats.SearchResult{
		BestIndex:  -1,
		MinEntropy: minEntropy,
		Scores:     make([]stats.CandidateScore, 0, len(candidates)),
	}

	for i, candidate := range candidates {
		if candidate == nil {
			return stats.SearchResult{}, apperrors.InvalidInputf("candidate %d is nil", i)
		}

		entropyFraction, variance, err := s.engine.Score(candidate, steps, trials)
		if err != nil {
			return stats.SearchResult{}, apperrors.Wrapf(err, "scoring candidate %d", i)
		}

		score := stats.CandidateScore{
			Index:           i,
			Source:          source.Describe(candidate),
			EntropyFraction: entropyFraction,
		}

		if entropyFraction >= minEntropy {
			score.Qualified = true
			score.Variance = variance

			if result.Best == nil || variance <= result.Variance {
				result.Best = candidate
				result.BestIndex = i
				result.Variance = variance
			}
		}
		result.Scores = append(result.Scores, score)

		s.logger.WithFields(logrus.Fields{
			"candidate":        score.Source.String(),
			"entropy_fraction": entropyFraction,
			"variance":         score.Variance,
			"qualified":        score.Qualified,
		}).Debug("scored candidate")
	}

	if result.Best == nil {
		s.logger.WithField("min_entropy", minEntropy).Info("no candidate reached the entropy floor")
	} else {
		s.logger.WithFields(logrus.Fields{
			"best":     result.Descriptor().String(),
			"variance": result.Variance,
		}).Info("selected lowest-variance candidate")
	}

	return result, nil
}

// Require turns a search without a winner into a CodeNoCandidate error for
// callers that cannot proceed without one.
func Require(result stats.SearchResult, family string) (source.Source, error) {
	if !result.Found() {
		return nil, &apperrors.AppError{
			Code:    apperrors.CodeNoCandidate,
			Message: apperrors.NoCandidate(family).Message,
			Cause:   core.ErrNoQualifyingCandidate,
		}
	}
	return result.Best, nil
}
