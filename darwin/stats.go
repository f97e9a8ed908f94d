package darwin

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarizes one completed call to Evolve.
type GenerationStats struct {
	Generation int
	Size       int
	Best       float64
	Worst      float64
	Mean       float64
	Stdev      float64
	Median     float64
	Elites     int // Individuals carried over by elitism
	Crossovers int // Slots filled by mating
	Mutations  int // Calls made to Strategy.Mutate
	Trimmed    int // Worst individuals dropped to restore the target size
	Duration   time.Duration
}

// String returns a one-line summary.
func (s GenerationStats) String() string {
	return fmt.Sprintf("gen %d: size=%d best=%.4f mean=%.4f stdev=%.4f worst=%.4f elites=%d crossovers=%d mutations=%d trimmed=%d (%s)",
		s.Generation, s.Size, s.Best, s.Mean, s.Stdev, s.Worst, s.Elites, s.Crossovers, s.Mutations, s.Trimmed, s.Duration)
}

// --- Statistical Functions ---

// Mean calculates the average of a slice of float64 values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	return stat.Mean(values, nil)
}

// Stdev calculates the sample standard deviation of a slice of float64 values.
func Stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0.0 // Undefined for fewer than 2 values
	}
	return stat.StdDev(values, nil)
}

// MaxFloat returns the maximum value, or negative infinity if the slice is empty.
func MaxFloat(values []float64) float64 {
	if len(values) == 0 {
		return math.Inf(-1)
	}
	return floats.Max(values)
}

// MinFloat returns the minimum value, or positive infinity if the slice is empty.
func MinFloat(values []float64) float64 {
	if len(values) == 0 {
		return math.Inf(1)
	}
	return floats.Min(values)
}

// Median calculates the median of a slice of float64 values.
// Returns NaN if the slice is empty.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	lower := stat.Quantile(0.5, stat.Empirical, sorted, nil)
	if n%2 == 1 {
		return lower
	}
	// stat.Quantile picks the lower middle value; an even count averages both.
	return (lower + sorted[n/2]) / 2.0
}

// fitnesses collects the fitness of every individual in order.
func fitnesses(individuals []*Individual) []float64 {
	out := make([]float64, len(individuals))
	for i, ind := range individuals {
		out[i] = ind.fitness
	}
	return out
}

// summarize fills the fitness fields of s from individuals.
func summarize(s *GenerationStats, individuals []*Individual) {
	values := fitnesses(individuals)
	s.Size = len(values)
	if len(values) == 0 {
		return
	}
	s.Best = MaxFloat(values)
	s.Worst = MinFloat(values)
	s.Mean = Mean(values)
	s.Stdev = Stdev(values)
	s.Median = Median(values)
}
