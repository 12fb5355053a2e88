// Package testkit provides fixtures shared by package tests: scripted random
// streams, stub sources with known statistics and a small study config.
package testkit

import (
	"randsys/domain/source"
	"randsys/internal/config"
)

var (
	_ source.RNG    = (*ScriptedRNG)(nil)
	_ source.Source = (*PatternSource)(nil)
)

// ScriptedRNG replays fixed draws so tests can pin exact sample paths. It
// panics when a script runs out.
type ScriptedRNG struct {
	Ints   []int
	Floats []float64
}

// IntN returns the next scripted int reduced mod n
func (s *ScriptedRNG) IntN(n int) int {
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	return v % n
}

// Float64 returns the next scripted float
func (s *ScriptedRNG) Float64() float64 {
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

// PatternSource cycles through a fixed value pattern and always reports the
// same entropy. Resets counts Reset calls.
type PatternSource struct {
	N            int
	FixedEntropy float64
	Pattern      []int
	Resets       int

	pos int
}

func (p *PatternSource) Entropy() float64  { return p.FixedEntropy }
func (p *PatternSource) AlphabetSize() int { return p.N }

func (p *PatternSource) Reset() {
	p.pos = 0
	p.Resets++
}

func (p *PatternSource) Sample() int {
	v := p.Pattern[p.pos%len(p.Pattern)]
	p.pos++
	return v
}

// Balanced ends every 4-step trial with counts {2,2}: variance 0
func Balanced(entropy float64) *PatternSource {
	return &PatternSource{N: 2, FixedEntropy: entropy, Pattern: []int{0, 1}}
}

// Lopsided ends every 4-step trial with counts {4,0}: variance 4
func Lopsided(entropy float64) *PatternSource {
	return &PatternSource{N: 2, FixedEntropy: entropy, Pattern: []int{0}}
}

// SmallConfig is a fast, seeded study: n=3, 4 steps, 50 trials, 4
// candidates per family and no entropy floor
func SmallConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Study.AlphabetSize = 3
	cfg.Study.Steps = 4
	cfg.Study.Trials = 50
	cfg.Study.MinEntropy = 0
	cfg.Study.Seed = 7
	cfg.Search.MaxSizeFactor = 2
	cfg.Search.MaxRefillThreshold = 2
	cfg.Search.DecreaseFactorDivisions = 4
	return cfg
}
