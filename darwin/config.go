package darwin

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Config stores the configuration parameters for a Population.
type Config struct {
	Population PopulationConfig
	Stagnation StagnationConfig
}

// PopulationConfig holds the parameters of the evolution engine itself.
type PopulationConfig struct {
	Size           int     `ini:"size"`
	MaxGeneration  int     `ini:"max_generation"` // Advisory, never enforced by Evolve
	ElitismRate    float64 `ini:"elitism_rate"`
	MutationRate   float64 `ini:"mutation_rate"`
	CrossoverRate  float64 `ini:"crossover_rate"`
	TournamentSize int     `ini:"tournament_size"` // Challengers drawn per parent slot
	Workers        int     `ini:"workers"`         // Concurrent fitness evaluations
	Seed           uint64  `ini:"seed"`            // 0 picks a random seed
}

// StagnationConfig holds parameters for the caller-side StagnationTracker.
type StagnationConfig struct {
	MaxStagnation int `ini:"max_stagnation"`
}

// DefaultConfig returns the configuration used when nothing else is specified.
func DefaultConfig() *Config {
	return &Config{
		Population: PopulationConfig{
			Size:           0,
			MaxGeneration:  1024,
			ElitismRate:    0.2,
			MutationRate:   0.1,
			CrossoverRate:  0.1,
			TournamentSize: 3,
			Workers:        1,
		},
		Stagnation: StagnationConfig{
			MaxStagnation: 15,
		},
	}
}

// LoadConfig loads configuration parameters from an INI file.
// Keys absent from the file keep their DefaultConfig value.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		SpaceBeforeInlineComment: true, // "0.2 # comment" is a value followed by a comment
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	config := DefaultConfig()
	if err := cfg.Section("Population").MapTo(&config.Population); err != nil {
		return nil, fmt.Errorf("failed to map [Population] section: %w", err)
	}
	if err := cfg.Section("Stagnation").MapTo(&config.Stagnation); err != nil {
		return nil, fmt.Errorf("failed to map [Stagnation] section: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks every parameter. Out-of-range values are reported, never clamped.
func (c *Config) Validate() error {
	pc := c.Population
	if err := validateSize(pc.Size); err != nil {
		return err
	}
	if err := validateMaxGeneration(pc.MaxGeneration); err != nil {
		return err
	}
	if err := validateRate("elitism_rate", pc.ElitismRate); err != nil {
		return err
	}
	if err := validateRate("mutation_rate", pc.MutationRate); err != nil {
		return err
	}
	if err := validateRate("crossover_rate", pc.CrossoverRate); err != nil {
		return err
	}
	if err := validateTournamentSize(pc.TournamentSize); err != nil {
		return err
	}
	if err := validateWorkers(pc.Workers); err != nil {
		return err
	}
	if c.Stagnation.MaxStagnation < 0 {
		return fmt.Errorf("%w: max_stagnation cannot be negative", ErrInvalidConfig)
	}
	return nil
}

func validateSize(size int) error {
	if size < 0 {
		return fmt.Errorf("%w: size cannot be negative (got %d)", ErrInvalidConfig, size)
	}
	return nil
}

func validateMaxGeneration(maxGeneration int) error {
	if maxGeneration < 0 {
		return fmt.Errorf("%w: max_generation cannot be negative (got %d)", ErrInvalidConfig, maxGeneration)
	}
	return nil
}

// validateRate rejects anything outside [0, 1], NaN included.
func validateRate(name string, rate float64) error {
	if !(rate >= 0 && rate <= 1) {
		return fmt.Errorf("%w: %s must be between 0 and 1 (got %v)", ErrInvalidConfig, name, rate)
	}
	return nil
}

func validateTournamentSize(size int) error {
	if size < 1 {
		return fmt.Errorf("%w: tournament_size must be positive (got %d)", ErrInvalidConfig, size)
	}
	return nil
}

func validateWorkers(workers int) error {
	if workers < 1 {
		return fmt.Errorf("%w: workers must be positive (got %d)", ErrInvalidConfig, workers)
	}
	return nil
}
