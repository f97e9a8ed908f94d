package darwin

import (
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
)

var errBoom = errors.New("boom")

// newNumber builds an individual holding a single float64 gene.
func newNumber(v float64) *Individual {
	c, err := NewChromosome(NewGene(v))
	if err != nil {
		panic(err)
	}
	ind, err := NewIndividual(c)
	if err != nil {
		panic(err)
	}
	return ind
}

func numberOf(ind *Individual) float64 {
	v, _ := GeneValue[float64](ind.Chromosome(0).Gene(0))
	return v
}

func numbers(values ...float64) []*Individual {
	out := make([]*Individual, len(values))
	for i, v := range values {
		out[i] = newNumber(v)
	}
	return out
}

// numberStrategy scores an individual by its gene value. Mutate nudges the
// value in place, Mate returns `brood` children at the parents' mean plus an
// offset per child.
type numberStrategy struct {
	rng   *rand.Rand
	brood int

	fitnessErr  error
	failAfter   int64 // Fitness fails once this many calls succeeded (0: never)
	mutateErr   error
	mateErr     error
	generateErr error
	nilGenerate bool
	nilMutate   bool
	nilChild    bool
	passThrough bool // Mate returns the parents themselves

	fitnessCalls atomic.Int64

	mu       sync.Mutex
	children []*Individual // Every child handed out by Mate
}

func newNumberStrategy(seed uint64, brood int) *numberStrategy {
	return &numberStrategy{rng: rand.New(rand.NewPCG(seed, 1)), brood: brood}
}

func (s *numberStrategy) Fitness(ind *Individual) (float64, error) {
	n := s.fitnessCalls.Add(1)
	if s.fitnessErr != nil && n > s.failAfter {
		return 0, s.fitnessErr
	}
	return numberOf(ind), nil
}

func (s *numberStrategy) Mutate(ind *Individual) (*Individual, error) {
	if s.mutateErr != nil {
		return nil, s.mutateErr
	}
	if s.nilMutate {
		return nil, nil
	}
	if err := ind.Chromosome(0).Gene(0).Set(numberOf(ind) + s.rng.NormFloat64()); err != nil {
		return nil, err
	}
	return ind, nil
}

func (s *numberStrategy) Mate(parent1, parent2 *Individual) ([]*Individual, error) {
	if s.mateErr != nil {
		return nil, s.mateErr
	}
	if s.nilChild {
		return []*Individual{newNumber(0), nil}, nil
	}
	if s.passThrough {
		return []*Individual{parent1, parent2}, nil
	}
	mean := (numberOf(parent1) + numberOf(parent2)) / 2
	out := make([]*Individual, s.brood)
	for k := range out {
		out[k] = newNumber(mean + float64(k) - float64(s.brood)/2 + s.rng.Float64())
	}
	s.mu.Lock()
	s.children = append(s.children, out...)
	s.mu.Unlock()
	return out, nil
}

func (s *numberStrategy) GenerateRandom() (*Individual, error) {
	if s.generateErr != nil {
		return nil, s.generateErr
	}
	if s.nilGenerate {
		return nil, nil
	}
	return newNumber(s.rng.Float64() * 100), nil
}

// identityStrategy scores by gene value and never changes anything.
type identityStrategy struct{}

func (identityStrategy) Fitness(ind *Individual) (float64, error)    { return numberOf(ind), nil }
func (identityStrategy) Mutate(ind *Individual) (*Individual, error) { return ind, nil }
func (identityStrategy) Mate(_, _ *Individual) ([]*Individual, error) {
	return nil, nil
}
func (identityStrategy) GenerateRandom() (*Individual, error) { return newNumber(0), nil }

// wordStrategy evolves fixed-length uppercase strings toward target; fitness
// is minus the Hamming distance.
type wordStrategy struct {
	target string
	rng    *rand.Rand
}

func newWordStrategy(target string, seed uint64) *wordStrategy {
	return &wordStrategy{target: target, rng: rand.New(rand.NewPCG(seed, 2))}
}

func newWord(data string) *Individual {
	c, err := NewChromosome(NewGene(data))
	if err != nil {
		panic(err)
	}
	ind, err := NewIndividual(c)
	if err != nil {
		panic(err)
	}
	return ind
}

func wordOf(ind *Individual) string {
	v, _ := GeneValue[string](ind.Chromosome(0).Gene(0))
	return v
}

func (s *wordStrategy) letter() byte {
	return byte('A' + s.rng.IntN(26))
}

func (s *wordStrategy) Fitness(ind *Individual) (float64, error) {
	data := wordOf(ind)
	distance := 0
	for i := range len(s.target) {
		if i >= len(data) || data[i] != s.target[i] {
			distance++
		}
	}
	return -float64(distance), nil
}

func (s *wordStrategy) Mutate(ind *Individual) (*Individual, error) {
	b := []byte(wordOf(ind))
	b[s.rng.IntN(len(b))] = s.letter()
	if err := ind.Chromosome(0).Gene(0).Set(string(b)); err != nil {
		return nil, err
	}
	return ind, nil
}

func (s *wordStrategy) Mate(parent1, parent2 *Individual) ([]*Individual, error) {
	g1, g2 := wordOf(parent1), wordOf(parent2)
	pivot := s.rng.IntN(len(g1))
	return []*Individual{
		newWord(g1[:pivot] + g2[pivot:]),
		newWord(g2[:pivot] + g1[pivot:]),
	}, nil
}

func (s *wordStrategy) GenerateRandom() (*Individual, error) {
	b := make([]byte, len(s.target))
	for i := range b {
		b[i] = s.letter()
	}
	return newWord(string(b)), nil
}

// vectorStrategy holds a []float64 gene and mutates the slice's elements in
// place. Fitness is the sum of the elements.
type vectorStrategy struct {
	rng        *rand.Rand
	fitnessErr error
	failAfter  int64
	calls      atomic.Int64
}

func newVectorStrategy(seed uint64) *vectorStrategy {
	return &vectorStrategy{rng: rand.New(rand.NewPCG(seed, 3))}
}

func newVector(values ...float64) *Individual {
	c, err := NewChromosome(NewGene(values))
	if err != nil {
		panic(err)
	}
	ind, err := NewIndividual(c)
	if err != nil {
		panic(err)
	}
	return ind
}

func vectorOf(ind *Individual) []float64 {
	v, _ := GeneValue[[]float64](ind.Chromosome(0).Gene(0))
	return v
}

func (s *vectorStrategy) Fitness(ind *Individual) (float64, error) {
	if n := s.calls.Add(1); s.fitnessErr != nil && n > s.failAfter {
		return 0, s.fitnessErr
	}
	sum := 0.0
	for _, x := range vectorOf(ind) {
		sum += x
	}
	return sum, nil
}

func (s *vectorStrategy) Mutate(ind *Individual) (*Individual, error) {
	v := vectorOf(ind)
	v[s.rng.IntN(len(v))] += 1
	return ind, nil
}

func (s *vectorStrategy) Mate(parent1, parent2 *Individual) ([]*Individual, error) {
	return []*Individual{parent1, parent2}, nil
}

func (s *vectorStrategy) GenerateRandom() (*Individual, error) {
	return newVector(s.rng.Float64(), s.rng.Float64(), s.rng.Float64()), nil
}

// recordingObserver counts notifications.
type recordingObserver struct {
	evaluations []int
	stats       []GenerationStats
}

func (r *recordingObserver) OnEvaluate(generation int, individuals []*Individual) {
	r.evaluations = append(r.evaluations, generation)
}

func (r *recordingObserver) OnEvolve(stats GenerationStats) {
	r.stats = append(r.stats, stats)
}

func testConfig(size int, elitism, mutation, crossover float64) *Config {
	config := DefaultConfig()
	config.Population.Size = size
	config.Population.ElitismRate = elitism
	config.Population.MutationRate = mutation
	config.Population.CrossoverRate = crossover
	config.Population.Seed = 42
	return config
}
