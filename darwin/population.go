package darwin

import (
	"cmp"
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/sourcegraph/conc/pool"
	"golang.org/x/exp/slices"
)

// Population holds the individuals of the current generation together with
// the parameters and the Strategy that drive their evolution.
//
// A Population is not safe for concurrent use.
type Population struct {
	config      PopulationConfig
	individuals []*Individual // Current generation
	strategy    Strategy
	observer    Observer
	rng         *rand.Rand
	generation  int
	stats       GenerationStats // Stats of the last completed generation
}

// NewPopulation creates a Population and seeds it. The initial individuals, if
// any, are kept in order and padded with Strategy.GenerateRandom up to the
// configured size.
func NewPopulation(config *Config, strategy Strategy, initial []*Individual) (*Population, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if strategy == nil {
		return nil, ErrNilStrategy
	}
	for i, ind := range initial {
		if ind == nil {
			return nil, fmt.Errorf("%w: initial individual %d", ErrNilIndividual, i)
		}
	}

	seed := config.Population.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	p := &Population{
		config:      config.Population,
		individuals: slices.Clone(initial),
		strategy:    strategy,
		rng:         rand.New(rand.NewPCG(seed, seed)),
	}
	if err := p.seed(); err != nil {
		return nil, err
	}
	return p, nil
}

// seed pads the individual list with random individuals up to the target size.
func (p *Population) seed() error {
	for len(p.individuals) < p.config.Size {
		ind, err := p.strategy.GenerateRandom()
		if err != nil {
			return err
		}
		if ind == nil {
			return fmt.Errorf("%w: GenerateRandom returned nil", ErrContractViolation)
		}
		p.individuals = append(p.individuals, ind)
	}
	return nil
}

// Evaluate computes and stores the fitness of every individual. The order of
// the individuals is unchanged. If any fitness call fails, no fitness is
// stored and the strategy's error is returned as is.
func (p *Population) Evaluate() error {
	scores, err := p.score(p.individuals)
	if err != nil {
		return err
	}
	for i, ind := range p.individuals {
		ind.fitness = scores[i]
	}
	if p.observer != nil {
		p.observer.OnEvaluate(p.generation, p.individuals)
	}
	return nil
}

// score runs Strategy.Fitness over individuals, concurrently when more than one
// worker is configured. With several failures the one at the lowest index wins.
func (p *Population) score(individuals []*Individual) ([]float64, error) {
	scores := make([]float64, len(individuals))
	if p.config.Workers <= 1 || len(individuals) < 2 {
		for i, ind := range individuals {
			s, err := p.strategy.Fitness(ind)
			if err != nil {
				return nil, err
			}
			scores[i] = s
		}
		return scores, nil
	}

	errs := make([]error, len(individuals))
	wp := pool.New().WithMaxGoroutines(p.config.Workers)
	for i, ind := range individuals {
		wp.Go(func() {
			scores[i], errs[i] = p.strategy.Fitness(ind)
		})
	}
	wp.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return scores, nil
}

// Sort orders the individuals by ascending fitness: worst first, best last.
// Individuals with equal fitness keep their relative order.
func (p *Population) Sort() {
	sortByFitness(p.individuals)
}

func sortByFitness(individuals []*Individual) {
	slices.SortStableFunc(individuals, func(a, b *Individual) int {
		return cmp.Compare(a.fitness, b.fitness)
	})
}

// SelectParents runs two tournaments over the current individuals and returns
// the winners. ok is false when there are fewer than two individuals.
func (p *Population) SelectParents() (parent1, parent2 *Individual, ok bool) {
	return p.tournament(p.individuals)
}

// tournament picks one random candidate per parent slot and lets
// TournamentSize random challengers replace it when strictly fitter.
func (p *Population) tournament(from []*Individual) (*Individual, *Individual, bool) {
	if len(from) < 2 {
		return nil, nil, false
	}
	var winners [2]*Individual
	for slot := range winners {
		best := from[p.rng.IntN(len(from))]
		for range p.config.TournamentSize {
			challenger := from[p.rng.IntN(len(from))]
			if challenger.fitness > best.fitness {
				best = challenger
			}
		}
		winners[slot] = best
	}
	return winners[0], winners[1], true
}

// chance draws a uniform value and reports whether it is <= rate.
// A zero rate never fires and consumes no draw.
func (p *Population) chance(rate float64) bool {
	if rate <= 0 {
		return false
	}
	return p.rng.Float64() <= rate
}

// --- Accessors ---

// Individuals returns the current generation. The slice is a copy; the
// individuals are owned by the population and may be dropped by Evolve.
func (p *Population) Individuals() []*Individual {
	return slices.Clone(p.individuals)
}

// All iterates over the current generation in order.
func (p *Population) All() iter.Seq[*Individual] {
	snapshot := p.Individuals()
	return func(yield func(*Individual) bool) {
		for _, ind := range snapshot {
			if !yield(ind) {
				return
			}
		}
	}
}

// Len returns the number of individuals currently held.
func (p *Population) Len() int {
	return len(p.individuals)
}

// Best returns the individual with the highest stored fitness, the last one
// among equals, or nil if the population is empty.
func (p *Population) Best() *Individual {
	var best *Individual
	for _, ind := range p.individuals {
		if best == nil || ind.fitness >= best.fitness {
			best = ind
		}
	}
	return best
}

// Generation returns how many generations have been produced by Evolve.
func (p *Population) Generation() int {
	return p.generation
}

// Stats returns the statistics of the last completed generation.
func (p *Population) Stats() GenerationStats {
	return p.stats
}

// Size returns the target number of individuals.
func (p *Population) Size() int {
	return p.config.Size
}

// MaxGeneration returns the advisory generation limit.
func (p *Population) MaxGeneration() int {
	return p.config.MaxGeneration
}

// ElitismRate returns the share of the best individuals kept as elites.
func (p *Population) ElitismRate() float64 {
	return p.config.ElitismRate
}

// MutationRate returns the probability of mutating a filled slot.
func (p *Population) MutationRate() float64 {
	return p.config.MutationRate
}

// CrossoverRate returns the probability of filling a slot by mating.
func (p *Population) CrossoverRate() float64 {
	return p.config.CrossoverRate
}

// TournamentSize returns the number of challengers per tournament.
func (p *Population) TournamentSize() int {
	return p.config.TournamentSize
}

// Workers returns how many fitness evaluations may run at once.
func (p *Population) Workers() int {
	return p.config.Workers
}

// Strategy returns the strategy driving the population.
func (p *Population) Strategy() Strategy {
	return p.strategy
}

// --- Setters ---

// SetSize changes the target size. Growing pads the population right away
// with random individuals; shrinking takes effect at the next Evolve, which
// trims the worst.
func (p *Population) SetSize(size int) error {
	if err := validateSize(size); err != nil {
		return err
	}
	p.config.Size = size
	return p.seed()
}

// SetMaxGeneration changes the advisory generation limit.
func (p *Population) SetMaxGeneration(maxGeneration int) error {
	if err := validateMaxGeneration(maxGeneration); err != nil {
		return err
	}
	p.config.MaxGeneration = maxGeneration
	return nil
}

// SetElitismRate changes the elitism rate. It must be within [0, 1].
func (p *Population) SetElitismRate(rate float64) error {
	if err := validateRate("elitism_rate", rate); err != nil {
		return err
	}
	p.config.ElitismRate = rate
	return nil
}

// SetMutationRate changes the mutation rate. It must be within [0, 1].
func (p *Population) SetMutationRate(rate float64) error {
	if err := validateRate("mutation_rate", rate); err != nil {
		return err
	}
	p.config.MutationRate = rate
	return nil
}

// SetCrossoverRate changes the crossover rate. It must be within [0, 1].
func (p *Population) SetCrossoverRate(rate float64) error {
	if err := validateRate("crossover_rate", rate); err != nil {
		return err
	}
	p.config.CrossoverRate = rate
	return nil
}

// SetTournamentSize changes the number of challengers per tournament.
func (p *Population) SetTournamentSize(size int) error {
	if err := validateTournamentSize(size); err != nil {
		return err
	}
	p.config.TournamentSize = size
	return nil
}

// SetWorkers changes how many fitness evaluations may run at once.
func (p *Population) SetWorkers(workers int) error {
	if err := validateWorkers(workers); err != nil {
		return err
	}
	p.config.Workers = workers
	return nil
}

// SetStrategy replaces the strategy used from the next operation on.
func (p *Population) SetStrategy(strategy Strategy) error {
	if strategy == nil {
		return ErrNilStrategy
	}
	p.strategy = strategy
	return nil
}

// SetRand replaces the random source used for selection and rate draws.
func (p *Population) SetRand(rng *rand.Rand) error {
	if rng == nil {
		return fmt.Errorf("%w: random source is required", ErrInvalidConfig)
	}
	p.rng = rng
	return nil
}

// SetObserver installs the observer notified after evaluation and evolution.
// A nil observer disables notifications.
func (p *Population) SetObserver(observer Observer) {
	p.observer = observer
}

// String returns a string representation of the Population.
func (p *Population) String() string {
	individuals := fmt.Sprintf("... (%d)", len(p.individuals))
	if len(p.individuals) <= 3 {
		individuals = fmt.Sprintf("%v", p.individuals)
	}
	return fmt.Sprintf("Population(Individuals: %s, Size: %d, MaxGeneration: %d, ElitismRate: %.3f, MutationRate: %.3f, CrossoverRate: %.3f, Generation: %d)",
		individuals, p.config.Size, p.config.MaxGeneration, p.config.ElitismRate, p.config.MutationRate, p.config.CrossoverRate, p.generation)
}
