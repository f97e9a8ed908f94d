package darwin

// Strategy supplies the problem-specific half of the algorithm: how to score a
// candidate and how to produce new ones. Errors returned by any method are
// handed back unmodified to whoever called the engine.
type Strategy interface {
	// Fitness scores ind. Higher is better. It must not modify ind and must
	// return the same score for an unchanged individual.
	Fitness(ind *Individual) (float64, error)
	// Mutate perturbs ind. It may edit ind in place and return it, or return
	// a new individual. The engine only hands it individuals it owns.
	Mutate(ind *Individual) (*Individual, error)
	// Mate recombines two parents into zero or more children. The parents
	// must not be modified. A child may be one of the parents; the engine
	// copies it before any change.
	Mate(parent1, parent2 *Individual) ([]*Individual, error)
	// GenerateRandom creates a fresh, unevaluated random individual.
	GenerateRandom() (*Individual, error)
}
