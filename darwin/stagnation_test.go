package darwin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStagnationTrackerErrors(t *testing.T) {
	_, err := NewStagnationTracker(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewStagnationTracker(&StagnationConfig{MaxStagnation: -1})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStagnationTracker(t *testing.T) {
	s, err := NewStagnationTracker(&StagnationConfig{MaxStagnation: 3})
	require.NoError(t, err)
	assert.True(t, math.IsInf(s.Best(), -1))

	assert.True(t, s.Update(1, 1.0))
	assert.True(t, s.Update(2, 2.0))
	assert.False(t, s.Update(3, 2.0), "equal fitness is not an improvement")
	assert.False(t, s.Update(4, 1.5))
	assert.Equal(t, 2, s.StagnantFor())
	assert.False(t, s.Stagnant())

	assert.False(t, s.Update(5, 0))
	assert.True(t, s.Stagnant())
	assert.Equal(t, 2.0, s.Best())

	assert.True(t, s.Update(6, 2.5))
	assert.False(t, s.Stagnant())
	assert.Equal(t, []float64{1, 2, 2, 1.5, 0, 2.5}, s.FitnessHistory)
}

func TestStagnationDisabled(t *testing.T) {
	s, err := NewStagnationTracker(&StagnationConfig{})
	require.NoError(t, err)
	s.Update(1, 1)
	for gen := 2; gen < 100; gen++ {
		s.Update(gen, 0)
	}
	assert.False(t, s.Stagnant())
}

func TestStagnationTrackerObservesPopulation(t *testing.T) {
	s, err := NewStagnationTracker(&StagnationConfig{MaxStagnation: 2})
	require.NoError(t, err)

	p, err := NewPopulation(testConfig(4, 0, 0, 0), identityStrategy{}, numbers(1, 2, 3, 4))
	require.NoError(t, err)
	p.SetObserver(s)

	for range 3 {
		require.NoError(t, p.Evolve())
	}
	assert.Equal(t, []float64{4, 4, 4}, s.FitnessHistory)
	assert.Equal(t, 1, s.LastImproved)
	assert.True(t, s.Stagnant())

	s.OnEvolve(GenerationStats{Generation: 9})
	assert.Len(t, s.FitnessHistory, 3)
}
