package darwin

import (
	"fmt"
	"math"
)

// StagnationTracker watches the best fitness across generations so a caller can
// stop a run that no longer improves. Population never consults it; deciding
// when to stop stays with the loop that calls Evolve.
type StagnationTracker struct {
	Config         *StagnationConfig
	FitnessHistory []float64 // Best fitness of each generation seen
	LastImproved   int       // Generation of the last strict improvement
	Generation     int       // Most recent generation seen
}

// NewStagnationTracker creates a tracker for the given config.
func NewStagnationTracker(config *StagnationConfig) (*StagnationTracker, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: stagnation config is nil", ErrInvalidConfig)
	}
	if config.MaxStagnation < 0 {
		return nil, fmt.Errorf("%w: max_stagnation cannot be negative", ErrInvalidConfig)
	}
	return &StagnationTracker{Config: config}, nil
}

// Update records the best fitness of a generation and reports whether it beat
// every earlier one.
func (s *StagnationTracker) Update(generation int, best float64) bool {
	previous := MaxFloat(s.FitnessHistory)
	s.FitnessHistory = append(s.FitnessHistory, best)
	s.Generation = generation
	if best > previous {
		s.LastImproved = generation
		return true
	}
	return false
}

// StagnantFor returns how many generations passed since the last improvement.
func (s *StagnationTracker) StagnantFor() int {
	return s.Generation - s.LastImproved
}

// Stagnant reports whether MaxStagnation generations passed without improvement.
// A MaxStagnation of 0 disables the check.
func (s *StagnationTracker) Stagnant() bool {
	if s.Config.MaxStagnation == 0 {
		return false
	}
	return s.StagnantFor() >= s.Config.MaxStagnation
}

// Best returns the best fitness recorded so far, negative infinity if none.
func (s *StagnationTracker) Best() float64 {
	if len(s.FitnessHistory) == 0 {
		return math.Inf(-1)
	}
	return MaxFloat(s.FitnessHistory)
}

// OnEvaluate is a no-op; the tracker only follows completed generations.
func (s *StagnationTracker) OnEvaluate(int, []*Individual) {}

// OnEvolve records the best fitness of a non-empty generation.
func (s *StagnationTracker) OnEvolve(stats GenerationStats) {
	if stats.Size == 0 {
		return
	}
	s.Update(stats.Generation, stats.Best)
}
