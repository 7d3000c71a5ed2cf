package solver

import G "gorgonia.org/gorgonia"

// NewDefaultAdam returns a configuration of the Adam solver with default
// hyperparameters
func NewDefaultAdam(stepSize float64, batchSize int) Config {
	return NewAdam(stepSize, 1e-8, 0.9, 0.999, batchSize)
}

// NewAdam returns a configuration of the Adam solver
func NewAdam(stepSize, epsilon, beta1, beta2 float64, batchSize int) Config {
	return Config{
		Type:     Adam,
		StepSize: stepSize,
		Epsilon:  epsilon,
		Beta1:    beta1,
		Beta2:    beta2,
		Batch:    batchSize,
	}
}

func (c Config) createAdam() G.Solver {
	opts := append(c.options(),
		G.WithEps(c.Epsilon),
		G.WithBeta1(c.Beta1),
		G.WithBeta2(c.Beta2),
	)
	return G.NewAdamSolver(opts...)
}
