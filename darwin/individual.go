package darwin

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// Individual represents one candidate solution in the population.
// It consists of Chromosomes and the fitness last assigned by the engine.
type Individual struct {
	id          uuid.UUID
	chromosomes []*Chromosome
	fitness     float64 // Only written by the Population.
}

// NewIndividual creates an unevaluated individual from the given chromosomes.
func NewIndividual(chromosomes ...*Chromosome) (*Individual, error) {
	for i, c := range chromosomes {
		if c == nil {
			return nil, fmt.Errorf("%w: position %d", ErrNilChromosome, i)
		}
	}
	return &Individual{
		id:          uuid.New(),
		chromosomes: slices.Clone(chromosomes),
	}, nil
}

// ID returns the individual's unique identifier.
func (ind *Individual) ID() uuid.UUID {
	return ind.id
}

// Fitness returns the score assigned during the last evaluation, 0 if never evaluated.
func (ind *Individual) Fitness() float64 {
	return ind.fitness
}

// Len returns the number of chromosomes.
func (ind *Individual) Len() int {
	return len(ind.chromosomes)
}

// Chromosome returns the chromosome at position i.
func (ind *Individual) Chromosome(i int) *Chromosome {
	return ind.chromosomes[i]
}

// Chromosomes returns the individual's chromosomes. The slice is a copy.
func (ind *Individual) Chromosomes() []*Chromosome {
	return slices.Clone(ind.chromosomes)
}

// Clone creates a deep copy of the Individual. The copy keeps the ID and
// fitness of the original: it is the same candidate.
func (ind *Individual) Clone() *Individual {
	chromosomes := make([]*Chromosome, len(ind.chromosomes))
	for i, c := range ind.chromosomes {
		chromosomes[i] = c.Clone()
	}
	return &Individual{
		id:          ind.id,
		chromosomes: chromosomes,
		fitness:     ind.fitness,
	}
}

// String returns a string representation of the Individual.
func (ind *Individual) String() string {
	parts := make([]string, len(ind.chromosomes))
	for i, c := range ind.chromosomes {
		parts[i] = c.String()
	}
	return fmt.Sprintf("Individual(ID: %s, Fitness: %.4f, Chromosomes: %s)",
		ind.id, ind.fitness, strings.Join(parts, " "))
}
