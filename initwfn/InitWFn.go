// Package initwfn implements JSON serializable configurations of
// Gorgonia weight initialization algorithms
package initwfn

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// Type describes different types of InitWFn that are available
type Type string

// Available InitWFn types
const (
	GlorotU  Type = "GlorotU"
	GlorotN  Type = "GlorotN"
	HeU      Type = "HeU"
	HeN      Type = "HeN"
	Zeroes   Type = "Zeroes"
	Ones     Type = "Ones"
	Constant Type = "Constant"
	Gaussian Type = "Gaussian"
	Uniform  Type = "Uniform"
)

// Config describes a weight initialization algorithm. Fields which are
// not used by the algorithm Type are ignored.
type Config struct {
	Type Type

	Gain float64 // Glorot and He

	Value float64 // Constant

	Mean   float64 // Gaussian
	StdDev float64

	Low  float64 // Uniform
	High float64
}

// Default returns the default weight initializer, Glorot uniform with
// unit gain
func Default() Config {
	return NewGlorotU(1.0)
}

// NewGlorotU returns a new Glorot Uniform weight initializer
func NewGlorotU(gain float64) Config {
	return Config{Type: GlorotU, Gain: gain}
}

// NewGlorotN returns a new Glorot Normal weight initializer
func NewGlorotN(gain float64) Config {
	return Config{Type: GlorotN, Gain: gain}
}

// NewHeU returns a new He Uniform weight initializer
func NewHeU(gain float64) Config {
	return Config{Type: HeU, Gain: gain}
}

// NewHeN returns a new He Normal weight initializer
func NewHeN(gain float64) Config {
	return Config{Type: HeN, Gain: gain}
}

// NewZeroes returns a weight initializer which sets all weights to 0
func NewZeroes() Config {
	return Config{Type: Zeroes}
}

// NewOnes returns a weight initializer which sets all weights to 1
func NewOnes() Config {
	return Config{Type: Ones}
}

// NewConstant returns a weight initializer which sets all weights to
// value
func NewConstant(value float64) Config {
	return Config{Type: Constant, Value: value}
}

// NewGaussian returns a new Gaussian weight initializer
func NewGaussian(mean, stddev float64) Config {
	return Config{Type: Gaussian, Mean: mean, StdDev: stddev}
}

// NewUniform returns a new Uniform weight initializer
func NewUniform(low, high float64) Config {
	return Config{Type: Uniform, Low: low, High: high}
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	switch c.Type {
	case GlorotU, GlorotN, HeU, HeN:
		if c.Gain <= 0 {
			return fmt.Errorf("validate: gain must be positive \n\thave(%v)",
				c.Gain)
		}
	case Gaussian:
		if c.StdDev <= 0 {
			return fmt.Errorf("validate: standard deviation must be "+
				"positive \n\thave(%v)", c.StdDev)
		}
	case Uniform:
		if c.Low >= c.High {
			return fmt.Errorf("validate: low must be less than high "+
				"\n\thave(%v, %v)", c.Low, c.High)
		}
	case Zeroes, Ones, Constant:
	default:
		return fmt.Errorf("validate: no such initialization algorithm %q",
			c.Type)
	}
	return nil
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (c Config) Create() (G.InitWFn, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	switch c.Type {
	case GlorotU:
		return G.GlorotU(c.Gain), nil
	case GlorotN:
		return G.GlorotN(c.Gain), nil
	case HeU:
		return G.HeU(c.Gain), nil
	case HeN:
		return G.HeN(c.Gain), nil
	case Zeroes:
		return G.Zeroes(), nil
	case Ones:
		return G.Ones(), nil
	case Constant:
		return G.ValuesOf(c.Value), nil
	case Gaussian:
		return G.Gaussian(c.Mean, c.StdDev), nil
	}
	return G.Uniform(c.Low, c.High), nil
}

