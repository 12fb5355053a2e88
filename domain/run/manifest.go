package run

import (
	"time"

	"randsys/domain/core"
)

// StudyManifest records everything needed to replay a study. It is written
// next to the result file.
type StudyManifest struct {
	RunID       core.RunID             `json:"run_id"`
	ConfigHash  core.ConfigHash        `json:"config_hash"`
	Params      map[string]interface{} `json:"params"`
	Seed        uint64                 `json:"seed"`
	CodeVersion string                 `json:"code_version"`
	Fingerprint RunFingerprint         `json:"fingerprint"`
	CreatedAt   time.Time              `json:"created_at"`
}

// NewStudyManifest creates a manifest for a study run with the given parameters
func NewStudyManifest(runID core.RunID, params map[string]interface{}, seed uint64, codeVersion string) *StudyManifest {
	configHash := core.ComputeConfigHash(params)
	return &StudyManifest{
		RunID:       runID,
		ConfigHash:  configHash,
		Params:      params,
		Seed:        seed,
		CodeVersion: codeVersion,
		Fingerprint: NewRunFingerprint(configHash, seed, codeVersion),
		CreatedAt:   time.Now().UTC(),
	}
}

// Validate checks if the manifest is complete
func (m *StudyManifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return core.NewParameterError("run_id", `""`, "non-empty")
	}
	if m.ConfigHash == "" {
		return core.NewParameterError("config_hash", `""`, "non-empty")
	}
	if m.Seed == 0 {
		return core.NewParameterError("seed", 0, "a resolved non-zero seed")
	}
	if m.CodeVersion == "" {
		return core.NewParameterError("code_version", `""`, "non-empty")
	}
	return nil
}

// SameStudy reports whether two manifests would produce identical results
func (m *StudyManifest) SameStudy(other *StudyManifest) bool {
	return m.Fingerprint.Fingerprint == other.Fingerprint.Fingerprint
}
