package network

import (
	"fmt"

	"github.com/samuelfneumann/qtetris/initwfn"
	"github.com/samuelfneumann/qtetris/solver"
)

// Config describes a multi-layered perceptron. For index i,
// HiddenSizes[i] is the number of nodes in hidden layer i, Biases[i]
// is whether hidden layer i has a bias unit, and Activations[i] is the
// activation of hidden layer i. A final linear layer with a bias unit
// is always added to produce the network's outputs.
type Config struct {
	HiddenSizes []int
	Biases      []bool
	Activations []*Activation

	InitWFn initwfn.Config
	Solver  solver.Config
}

// Default returns the default network configuration: two hidden ReLU
// layers of 230 units trained with stochastic gradient descent
func Default() Config {
	return Config{
		HiddenSizes: []int{230, 230},
		Biases:      []bool{true, true},
		Activations: []*Activation{ReLU(), ReLU()},
		InitWFn:     initwfn.Default(),
		Solver:      solver.Default(),
	}
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	if len(c.HiddenSizes) != len(c.Activations) {
		return fmt.Errorf("validate: invalid number of activations"+
			"\n\twant(%d)\n\thave(%d)", len(c.HiddenSizes), len(c.Activations))
	}

	if len(c.HiddenSizes) != len(c.Biases) {
		return fmt.Errorf("validate: invalid number of biases\n\twant(%d)"+
			"\n\thave(%d)", len(c.HiddenSizes), len(c.Biases))
	}

	for i, size := range c.HiddenSizes {
		if size < 1 {
			return fmt.Errorf("validate: hidden layer %d must have "+
				"positive size \n\thave(%d)", i, size)
		}
		if c.Activations[i] == nil {
			return fmt.Errorf("validate: hidden layer %d has no "+
				"activation", i)
		}
	}

	if err := c.InitWFn.Validate(); err != nil {
		return err
	}
	return c.Solver.Validate()
}
