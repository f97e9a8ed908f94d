// Package darwin provides a generic genetic-algorithm engine.
//
// A Population holds candidate solutions (Individuals made of Chromosomes of
// Genes) and advances them one generation per call to Evolve, using
// elitism, tournament selection, crossover and mutation. Everything that is
// specific to a problem, how to score a candidate and how to create, mutate
// and mate candidates, is supplied through the Strategy interface.
//
// Higher fitness is better. After each generation the individuals are sorted
// by ascending fitness, so the best one is last.
//
// Basic usage:
//
//	// Load configuration
//	config, err := darwin.LoadConfig("path/to/config")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	// Create a new population seeded by your strategy
//	pop, err := darwin.NewPopulation(config, strategy, nil)
//	if err != nil {
//		log.Fatalf("Error creating population: %v", err)
//	}
//
//	// Evolve until your own stopping condition is met
//	for pop.Generation() < pop.MaxGeneration() {
//		if err := pop.Evolve(); err != nil {
//			log.Fatalf("Error evolving: %v", err)
//		}
//		if pop.Best().Fitness() >= target {
//			fmt.Println("Solution found!")
//			break
//		}
//	}
package darwin
