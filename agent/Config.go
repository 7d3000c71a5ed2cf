package agent

import (
	"github.com/samuelfneumann/qtetris/environment"
)

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes, which
	// learns the action values of env with model
	CreateAgent(env environment.Environment, model QFunction,
		seed uint64) (Agent, error)

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error
}
