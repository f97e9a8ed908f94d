package darwin

import (
	"fmt"
	"io"
	"math"
)

// Observer is notified synchronously by a Population at two points: after
// every evaluation pass and after every completed generation.
type Observer interface {
	// OnEvaluate receives the freshly evaluated individuals. The slice must
	// not be retained or modified.
	OnEvaluate(generation int, individuals []*Individual)
	// OnEvolve receives the statistics of the generation just committed.
	OnEvolve(stats GenerationStats)
}

// Observers fans every notification out to each observer in order.
type Observers []Observer

// OnEvaluate forwards to every observer.
func (o Observers) OnEvaluate(generation int, individuals []*Individual) {
	for _, obs := range o {
		obs.OnEvaluate(generation, individuals)
	}
}

// OnEvolve forwards to every observer.
func (o Observers) OnEvolve(stats GenerationStats) {
	for _, obs := range o {
		obs.OnEvolve(stats)
	}
}

// Reporter prints per-generation progress to an io.Writer.
type Reporter struct {
	w           io.Writer
	bestFitness float64
	Verbose     bool // Also report every evaluation pass
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w, bestFitness: math.Inf(-1)}
}

// OnEvaluate prints the size of the evaluated generation when Verbose is set.
func (r *Reporter) OnEvaluate(generation int, individuals []*Individual) {
	if !r.Verbose {
		return
	}
	fmt.Fprintf(r.w, " Evaluated %d individuals (generation %d)\n", len(individuals), generation)
}

// OnEvolve prints the statistics of a completed generation.
func (r *Reporter) OnEvolve(stats GenerationStats) {
	fmt.Fprintf(r.w, "****** Generation %d ******\n", stats.Generation)
	if stats.Size > 0 && stats.Best > r.bestFitness {
		r.bestFitness = stats.Best
		fmt.Fprintf(r.w, " New best fitness: %.4f\n", stats.Best)
	}
	fmt.Fprintf(r.w, " Best: %.4f, Mean: %.4f, Stdev: %.4f, Worst: %.4f\n", stats.Best, stats.Mean, stats.Stdev, stats.Worst)
	fmt.Fprintf(r.w, " Elites: %d, Crossovers: %d, Mutations: %d, Trimmed: %d\n", stats.Elites, stats.Crossovers, stats.Mutations, stats.Trimmed)
	fmt.Fprintf(r.w, "Generation %d finished in %s\n\n", stats.Generation, stats.Duration)
}

// BestFitness returns the highest generation best seen so far.
func (r *Reporter) BestFitness() float64 {
	return r.bestFitness
}
