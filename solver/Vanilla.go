package solver

import G "gorgonia.org/gorgonia"

// NewVanilla returns a configuration of the vanilla gradient descent
// solver
func NewVanilla(stepSize float64, batchSize int, clip float64) Config {
	return Config{
		Type:     Vanilla,
		StepSize: stepSize,
		Batch:    batchSize,
		Clip:     clip,
	}
}

func (c Config) createVanilla() G.Solver {
	return G.NewVanillaSolver(c.options()...)
}
