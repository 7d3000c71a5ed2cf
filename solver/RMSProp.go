package solver

import G "gorgonia.org/gorgonia"

// NewDefaultRMSProp returns a configuration of the RMSProp solver with
// default hyperparameters
func NewDefaultRMSProp(stepSize float64, batchSize int) Config {
	return NewRMSProp(stepSize, 1e-8, 0.999, batchSize, -1.0)
}

// NewRMSProp returns a configuration of the RMSProp solver
func NewRMSProp(stepSize, epsilon, rho float64, batchSize int,
	clip float64) Config {
	return Config{
		Type:     RMSProp,
		StepSize: stepSize,
		Epsilon:  epsilon,
		Rho:      rho,
		Batch:    batchSize,
		Clip:     clip,
	}
}

func (c Config) createRMSProp() G.Solver {
	opts := append(c.options(),
		G.WithEps(c.Epsilon),
		G.WithRho(c.Rho),
	)
	return G.NewRMSPropSolver(opts...)
}
