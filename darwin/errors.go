package darwin

import "errors"

var (
	// ErrInvalidConfig is returned when a size, counter or rate is out of range.
	ErrInvalidConfig = errors.New("config error")
	// ErrNilStrategy is returned when a Population is built or updated without a Strategy.
	ErrNilStrategy = errors.New("strategy is required")
	// ErrNilIndividual is returned when a nil individual reaches the engine.
	ErrNilIndividual = errors.New("individual is nil")
	// ErrNilChromosome is returned when an Individual is built with a nil chromosome.
	ErrNilChromosome = errors.New("chromosome is nil")
	// ErrNilGene is returned when a Chromosome is built with a nil gene.
	ErrNilGene = errors.New("gene is nil")
	// ErrGeneType is returned when a Gene is given a value of a different type.
	ErrGeneType = errors.New("gene value type mismatch")
	// ErrContractViolation is returned when a Strategy hands back nil where an
	// individual was required.
	ErrContractViolation = errors.New("strategy contract violation")
)
