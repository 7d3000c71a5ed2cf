// Package envconfig provides configuration structs for configuring
// environments with default parameters. Environment configurations in
// this package are JSON serializable.
package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/qtetris/environment"
	"github.com/samuelfneumann/qtetris/environment/tetris"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Tetris EnvName = "Tetris"
)

// Config implements a specific configuration of a specific environment
type Config struct {
	Environment EnvName

	// Board dimensions, excluding the floor row
	Rows int
	Cols int
}

// Default returns the default environment configuration, a 22 x 10
// Tetris board
func Default() Config {
	return Config{
		Environment: Tetris,
		Rows:        tetris.DefaultRows,
		Cols:        tetris.DefaultCols,
	}
}

// Validate checks that a Config describes a valid environment
func (c Config) Validate() error {
	switch c.Environment {
	case Tetris:
		if c.Rows < 4 || c.Cols < 4 {
			return fmt.Errorf("validate: board must be at least 4 x 4 "+
				"\n\thave(%v x %v)", c.Rows, c.Cols)
		}
		return nil
	}

	return fmt.Errorf("validate: no such environment %q", c.Environment)
}

// CreateEnv creates the environment described by the Config. The seed
// determines any randomness in the environment.
func (c Config) CreateEnv(seed uint64) (env.Environment, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	switch c.Environment {
	case Tetris:
		return tetris.New(c.Rows, c.Cols, seed)
	}

	panic(fmt.Sprintf("createEnv: cannot create environment %v, no such "+
		"environment", c.Environment))
}
