package run

import (
	"crypto/sha256"
	"fmt"

	"randsys/domain/core"
)

// RunFingerprint ensures deterministic replay: two studies with the same
// fingerprint draw the same random streams over the same candidates
type RunFingerprint struct {
	ConfigHash  core.ConfigHash `json:"config_hash"`
	Seed        uint64          `json:"seed"`
	CodeVersion string          `json:"code_version"`
	Fingerprint core.Hash       `json:"fingerprint"` // Hash of all above
}

// NewRunFingerprint creates a fingerprint from determinism parameters
func NewRunFingerprint(configHash core.ConfigHash, seed uint64, codeVersion string) RunFingerprint {
	return RunFingerprint{
		ConfigHash:  configHash,
		Seed:        seed,
		CodeVersion: codeVersion,
		Fingerprint: computeRunFingerprint(configHash, seed, codeVersion),
	}
}

// computeRunFingerprint generates deterministic hash from all determinism parameters
func computeRunFingerprint(configHash core.ConfigHash, seed uint64, codeVersion string) core.Hash {
	data := fmt.Sprintf("config:%s|seed:%d|code:%s", configHash, seed, codeVersion)
	hash := sha256.Sum256([]byte(data))
	return core.Hash(fmt.Sprintf("%x", hash))
}
