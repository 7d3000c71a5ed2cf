// Package solver implements JSON serializable configurations of
// Gorgonia Solvers
package solver

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// Type describes different types of solvers that are available
type Type string

// Available solver types
const (
	Adam    Type = "Adam"
	Vanilla Type = "Vanilla"
	RMSProp Type = "RMSProp"
)

// Config describes a Gorgonia Solver. Fields which are not used by the
// solver Type are ignored.
//
// Batch is the value that gradients are divided by before each update.
// Losses which already average over the batch should use a Batch of 1.
type Config struct {
	Type     Type
	StepSize float64
	Batch    int
	Clip     float64 // <= 0 if no clipping

	// Adam
	Beta1 float64
	Beta2 float64

	// Adam and RMSProp
	Epsilon float64 // Smoothing factor
	Rho     float64 // RMSProp decay
}

// Default returns the default solver configuration, vanilla stochastic
// gradient descent with a step size of 0.2
func Default() Config {
	return NewVanilla(0.2, 1, -1)
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	if c.StepSize <= 0 {
		return fmt.Errorf("validate: step size must be positive "+
			"\n\thave(%v)", c.StepSize)
	}
	if c.Batch < 1 {
		return fmt.Errorf("validate: batch must be positive \n\thave(%v)",
			c.Batch)
	}

	switch c.Type {
	case Vanilla:
		return nil

	case Adam:
		if c.Beta1 < 0 || c.Beta1 >= 1 || c.Beta2 < 0 || c.Beta2 >= 1 {
			return fmt.Errorf("validate: adam betas must be in [0, 1) "+
				"\n\thave(%v, %v)", c.Beta1, c.Beta2)
		}
		if c.Epsilon <= 0 {
			return fmt.Errorf("validate: epsilon must be positive "+
				"\n\thave(%v)", c.Epsilon)
		}
		return nil

	case RMSProp:
		if c.Rho <= 0 || c.Rho >= 1 {
			return fmt.Errorf("validate: rho must be in (0, 1) "+
				"\n\thave(%v)", c.Rho)
		}
		if c.Epsilon <= 0 {
			return fmt.Errorf("validate: epsilon must be positive "+
				"\n\thave(%v)", c.Epsilon)
		}
		return nil
	}

	return fmt.Errorf("validate: no such solver type %q", c.Type)
}

// Create returns a new Gorgonia Solver as described by the Config
func (c Config) Create() (G.Solver, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	switch c.Type {
	case Adam:
		return c.createAdam(), nil

	case RMSProp:
		return c.createRMSProp(), nil
	}
	return c.createVanilla(), nil
}

// options returns the solver options shared by all solver types
func (c Config) options() []G.SolverOpt {
	opts := []G.SolverOpt{
		G.WithLearnRate(c.StepSize),
		G.WithBatchSize(float64(c.Batch)),
	}
	if c.Clip > 0 {
		opts = append(opts, G.WithClip(c.Clip))
	}
	return opts
}
