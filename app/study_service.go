package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"randsys/adapters/report"
	"randsys/adapters/sources"
	"randsys/adapters/stats/engine"
	"randsys/domain/core"
	"randsys/domain/run"
	"randsys/domain/source"
	"randsys/domain/stats"
	"randsys/internal/config"
	"randsys/internal/errors"
	"randsys/internal/rng"
	"randsys/internal/search"
)

// Version is recorded in every manifest; set with -ldflags at build time
var Version = "dev"

// StudyService runs the full study: search both parameterized families, then
// measure the deck and dice baselines alongside each family's winner
type StudyService struct {
	engine   *engine.StatsEngine
	searcher *search.Searcher
	logger   logrus.FieldLogger
}

// StudyResult contains the complete output of a study
type StudyResult struct {
	Manifest     *run.StudyManifest    `json:"manifest"`
	Searches     []report.FamilySearch `json:"searches"`
	Trajectories []stats.Trajectory    `json:"trajectories"`
	RuntimeMs    int64                 `json:"runtime_ms"`
}

// NewStudyService creates a study service. A nil logger falls back to the
// logrus standard logger.
func NewStudyService(logger logrus.FieldLogger) *StudyService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	eng := engine.NewStatsEngine(logger)
	return &StudyService{
		engine:   eng,
		searcher: search.NewSearcher(eng, logger),
		logger:   logger,
	}
}

// Run executes the study described by cfg. A family whose search finds no
// candidate at the entropy floor is reported and skipped; the other family
// is still searched and measured.
func (s *StudyService) Run(ctx context.Context, cfg *config.Config) (*StudyResult, error) {
	startTime := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := rng.Resolve(cfg.Study.Seed)
	manifest := run.NewStudyManifest(core.NewRunID(), cfg.Params(), seed, Version)
	logger := s.logger.WithFields(logrus.Fields{
		"run_id": manifest.RunID.String(),
		"seed":   seed,
	})
	logger.WithField("config_hash", core.Hash(manifest.ConfigHash).Short()).Info("study started")

	result := &StudyResult{Manifest: manifest}

	// Step 1: search the parameterized families
	for _, kind := range []source.Kind{source.KindReplenishingDeck, source.KindAdaptiveWeighted} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := s.Search(cfg, kind, seed)
		if err != nil {
			return nil, errors.Wrapf(err, "searching %s", kind)
		}
		if !found.Found() {
			logger.WithField("family", kind.DisplayName()).Warn("no candidate reached the entropy floor, skipping family")
		}
		result.Searches = append(result.Searches, report.FamilySearch{Family: kind, Result: found})
	}

	// Step 2: measure baselines and winners in reporting order
	winners := make(map[source.Kind]source.Params, len(result.Searches))
	for _, fs := range result.Searches {
		if fs.Result.Found() {
			winners[fs.Family] = fs.Result.Descriptor().Params
		}
	}

	for _, kind := range source.Kinds() {
		params, ok := winners[kind]
		if !ok && (kind == source.KindReplenishingDeck || kind == source.KindAdaptiveWeighted) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		traj, err := s.Measure(cfg, kind, params, seed)
		if err != nil {
			return nil, err
		}
		result.Trajectories = append(result.Trajectories, traj)
	}

	result.RuntimeMs = time.Since(startTime).Milliseconds()
	logger.WithFields(logrus.Fields{
		"trajectories": len(result.Trajectories),
		"runtime_ms":   result.RuntimeMs,
	}).Info("study finished")

	return result, nil
}

// Search builds the candidate set of a parameterized family from the
// configured bounds and selects the lowest-variance candidate
func (s *StudyService) Search(cfg *config.Config, kind source.Kind, seed uint64) (stats.SearchResult, error) {
	stream := rng.Derive(seed, "search/"+string(kind))
	n := cfg.Study.AlphabetSize

	var (
		candidates []source.Source
		err        error
	)
	switch kind {
	case source.KindReplenishingDeck:
		candidates, err = search.ReplenishingGrid(n, cfg.Search.MaxSizeFactor, cfg.Search.MaxRefillThreshold, stream)
	case source.KindAdaptiveWeighted:
		candidates, err = search.AdaptiveSweep(n, cfg.Search.DecreaseFactorDivisions, stream)
	default:
		return stats.SearchResult{}, errors.InvalidInputf("%s has no parameters to search", kind)
	}
	if err != nil {
		return stats.SearchResult{}, err
	}

	return s.searcher.SelectBest(candidates, cfg.Study.MinEntropy, cfg.Study.Steps, cfg.Study.Trials)
}

// Measure builds a fresh source of kind on its own stream and measures its
// trajectory, labeled with the family's display name
func (s *StudyService) Measure(cfg *config.Config, kind source.Kind, params source.Params, seed uint64) (stats.Trajectory, error) {
	src, err := sources.New(kind, cfg.Study.AlphabetSize, params, rng.Derive(seed, "measure/"+string(kind)))
	if err != nil {
		return stats.Trajectory{}, errors.Wrapf(err, "building %s", kind)
	}
	return s.engine.MeasureLabeled(core.Label(kind.DisplayName()), src, cfg.Study.Steps, cfg.Study.Trials)
}

// Rows flattens the trajectories into result rows: entropy then variance for
// each measured family
func (r *StudyResult) Rows() []stats.Row {
	rows := make([]stats.Row, 0, 2*len(r.Trajectories))
	for _, t := range r.Trajectories {
		rows = append(rows, t.Rows()...)
	}
	return rows
}

// Skipped lists the families that were not measured
func (r *StudyResult) Skipped() []source.Kind {
	return r.Report().Skipped()
}

// Report converts the result for the report renderers
func (r *StudyResult) Report() report.Report {
	return report.Report{
		Manifest:     r.Manifest,
		Searches:     r.Searches,
		Trajectories: r.Trajectories,
	}
}

// ManifestPath is where the manifest for a result file is written:
// "out.csv" becomes "out.manifest.json"
func ManifestPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".manifest.json"
}

// SaveManifest writes the manifest as indented JSON
func SaveManifest(path string, manifest *run.StudyManifest) error {
	if err := manifest.Validate(); err != nil {
		return errors.Wrap(err, "refusing to save incomplete manifest")
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding manifest")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.OutputError(path, err)
	}
	return nil
}

// LoadManifest reads a manifest written by SaveManifest
func LoadManifest(path string) (*run.StudyManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %s", path)
	}
	var manifest run.StudyManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, &errors.AppError{
			Code:    errors.CodeInvalidInput,
			Message: fmt.Sprintf("malformed manifest %s", path),
			Cause:   err,
		}
	}
	return &manifest, nil
}
