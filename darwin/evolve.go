package darwin

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/slices"
)

// Evolve produces exactly one new generation and replaces the current one.
//
// The current generation is evaluated, sorted and then frozen. The best
// round(n*ElitismRate) individuals are carried over unchanged. Every other
// slot is filled either by mating tournament winners (probability
// CrossoverRate) or by carrying over the individual at that rank, each
// result being mutated with probability MutationRate. The new generation is
// evaluated, sorted, and its worst individuals dropped until the target size
// is reached.
//
// Evolve never checks MaxGeneration; stopping is up to the caller. On error
// the previous generation stays in place.
func (p *Population) Evolve() error {
	start := time.Now()

	// 1. Evaluate and rank the current generation.
	if err := p.Evaluate(); err != nil {
		return err
	}
	p.Sort()
	frozen := slices.Clone(p.individuals)
	n := len(frozen)

	stats := GenerationStats{Generation: p.generation + 1}

	// 2. Transfer elites, the tail of the ascending order.
	eliteCount := int(math.Round(float64(n) * p.config.ElitismRate))
	next := newOffspring(frozen, max(n, p.config.Size))
	for _, elite := range frozen[n-eliteCount:] {
		next.add(elite.Clone())
	}
	stats.Elites = eliteCount

	// 3. Fill the remaining slots from the frozen ranking.
	slots := n - eliteCount
	for i := 0; i < slots; {
		if p.chance(p.config.CrossoverRate) {
			born, err := p.crossover(frozen, next, &stats)
			if err != nil {
				return err
			}
			if born > 0 {
				i += born
				continue
			}
			// No parents or no children: carry over instead.
		}

		ind := frozen[i]
		switch {
		case p.chance(p.config.MutationRate):
			mutated, err := p.mutate(ind.Clone(), &stats)
			if err != nil {
				return err
			}
			ind = mutated
		case next.placed(ind):
			ind = ind.Clone()
		}
		next.add(ind)
		i++
	}
	buffer := next.individuals

	// 4. Evaluate the new generation before anything is committed.
	scores, err := p.score(buffer)
	if err != nil {
		return err
	}
	for i, ind := range buffer {
		ind.fitness = scores[i]
	}

	// 5. Rank it and drop the worst overflow.
	sortByFitness(buffer)
	if excess := len(buffer) - p.config.Size; excess > 0 {
		buffer = slices.Clone(buffer[excess:])
		stats.Trimmed = excess
	}

	// 6. Commit.
	p.individuals = buffer
	p.generation++
	summarize(&stats, p.individuals)
	stats.Duration = time.Since(start)
	p.stats = stats

	if p.observer != nil {
		p.observer.OnEvaluate(p.generation, p.individuals)
		p.observer.OnEvolve(stats)
	}
	return nil
}

// crossover mates two tournament winners of the frozen generation and adds
// their children to next, each possibly mutated. The whole brood is kept even
// when it is larger than the slots left; Evolve trims the overflow. A child
// that is a frozen individual or already part of next is cloned first. It
// returns how many children were added, 0 when selection is unavailable or
// Mate produced none.
func (p *Population) crossover(frozen []*Individual, next *offspring, stats *GenerationStats) (int, error) {
	parent1, parent2, ok := p.tournament(frozen)
	if !ok {
		return 0, nil
	}
	children, err := p.mate(parent1, parent2)
	if err != nil {
		return 0, err
	}

	for _, child := range children {
		if child == nil {
			return 0, fmt.Errorf("%w: Mate returned a nil child", ErrContractViolation)
		}
	}
	for _, child := range children {
		if !next.private(child) {
			child = child.Clone()
		}
		if p.chance(p.config.MutationRate) {
			child, err = p.mutate(child, stats)
			if err != nil {
				return 0, err
			}
		}
		next.add(child)
	}
	stats.Crossovers += len(children)
	return len(children), nil
}

func (p *Population) mate(parent1, parent2 *Individual) ([]*Individual, error) {
	if parent1 == nil || parent2 == nil {
		return nil, fmt.Errorf("%w: cannot mate a nil parent", ErrNilIndividual)
	}
	return p.strategy.Mate(parent1, parent2)
}

func (p *Population) mutate(ind *Individual, stats *GenerationStats) (*Individual, error) {
	if ind == nil {
		return nil, fmt.Errorf("%w: cannot mutate a nil individual", ErrNilIndividual)
	}
	mutated, err := p.strategy.Mutate(ind)
	if err != nil {
		return nil, err
	}
	if mutated == nil {
		return nil, fmt.Errorf("%w: Mutate returned nil", ErrContractViolation)
	}
	stats.Mutations++
	return mutated, nil
}

// offspring is the generation being built. It remembers the frozen
// generation so that nothing belonging to it is changed in place.
type offspring struct {
	frozen      map[*Individual]struct{}
	members     map[*Individual]struct{}
	individuals []*Individual
}

func newOffspring(frozen []*Individual, capacity int) *offspring {
	o := &offspring{
		frozen:      make(map[*Individual]struct{}, len(frozen)),
		members:     make(map[*Individual]struct{}, capacity),
		individuals: make([]*Individual, 0, capacity),
	}
	for _, ind := range frozen {
		o.frozen[ind] = struct{}{}
	}
	return o
}

// private reports whether ind may be modified in place: it is neither part of
// the frozen generation nor already placed in this one.
func (o *offspring) private(ind *Individual) bool {
	_, frozen := o.frozen[ind]
	return !frozen && !o.placed(ind)
}

// placed reports whether ind is already part of this generation.
func (o *offspring) placed(ind *Individual) bool {
	_, ok := o.members[ind]
	return ok
}

func (o *offspring) add(ind *Individual) {
	o.members[ind] = struct{}{}
	o.individuals = append(o.individuals, ind)
}
