// Package deepq implements the deep Q-learning algorithm with an
// experience replay memory
package deepq

import (
	"fmt"

	"github.com/samuelfneumann/qtetris/agent"
	"github.com/samuelfneumann/qtetris/environment"
)

// Config implements a configuration for a DeepQ agent
type Config struct {
	Epsilon    float64 // Behaviour policy epsilon
	NumActions int

	// Experience replay parameters
	MaxMemory int
	BatchSize int

	Discount float64

	// Number of observed transitions between updates
	TrainEvery int
}

// Default returns the default DeepQ configuration
func Default() Config {
	return Config{
		Epsilon:    0.1,
		NumActions: 6,
		MaxMemory:  1000,
		BatchSize:  100,
		Discount:   0.9,
		TrainEvery: 1,
	}
}

// Validate checks a Config to ensure it is a valid configuration of a
// DeepQ agent.
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("validate: epsilon must be in [0, 1] "+
			"\n\thave(%v)", c.Epsilon)
	}

	if c.NumActions < 1 {
		return fmt.Errorf("validate: number of actions must be positive "+
			"\n\twant(>0) \n\thave(%v)", c.NumActions)
	}

	if c.MaxMemory < 1 {
		return fmt.Errorf("validate: replay memory must have positive "+
			"capacity \n\twant(>0) \n\thave(%v)", c.MaxMemory)
	}

	if c.BatchSize < 1 {
		return fmt.Errorf("validate: batch size must be positive "+
			"\n\twant(>0) \n\thave(%v)", c.BatchSize)
	}

	if c.Discount < 0 || c.Discount >= 1 {
		return fmt.Errorf("validate: discount must be in [0, 1) "+
			"\n\thave(%v)", c.Discount)
	}

	if c.TrainEvery < 1 {
		return fmt.Errorf("validate: agent must be trained at positive "+
			"timestep intervals \n\twant(>0) \n\thave(%v)", c.TrainEvery)
	}

	return nil
}

// CreateAgent creates a new DeepQ agent based on the configuration
func (c Config) CreateAgent(e environment.Environment, model agent.QFunction,
	seed uint64) (agent.Agent, error) {
	d, err := New(e, model, c, seed)
	if err != nil {
		return nil, err
	}
	return d, nil
}
