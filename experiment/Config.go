package experiment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/samuelfneumann/qtetris/agent/deepq"
	"github.com/samuelfneumann/qtetris/environment/envconfig"
	"github.com/samuelfneumann/qtetris/network"
)

// Config represents a configuration of an experiment. Configs are JSON
// serializable so that experiments can be described in files.
type Config struct {
	Epochs   int    // Number of episodes to run
	MaxSteps int    // Maximum steps per episode, 0 for no limit
	Seed     uint64 // Seed for the environment and agent

	EnvConf     envconfig.Config
	AgentConf   deepq.Config
	NetworkConf network.Config
}

// DefaultConfig returns the default experiment configuration
func DefaultConfig() Config {
	return Config{
		Epochs:      10000,
		MaxSteps:    0,
		Seed:        1,
		EnvConf:     envconfig.Default(),
		AgentConf:   deepq.Default(),
		NetworkConf: network.Default(),
	}
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	if c.Epochs < 1 {
		return fmt.Errorf("validate: epochs must be positive \n\thave(%v)",
			c.Epochs)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("validate: max steps must be non-negative "+
			"\n\thave(%v)", c.MaxSteps)
	}
	if err := c.EnvConf.Validate(); err != nil {
		return errors.Wrap(err, "environment")
	}
	if err := c.AgentConf.Validate(); err != nil {
		return errors.Wrap(err, "agent")
	}
	return errors.Wrap(c.NetworkConf.Validate(), "network")
}

// LoadConfig loads a JSON Config from filename. Fields missing from the
// file keep their values from DefaultConfig.
func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, errors.Wrap(err, "loadConfig")
	}

	c := DefaultConfig()
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrapf(err, "loadConfig: could not parse %v",
			filename)
	}
	return c, nil
}

// Save saves the Config as JSON to filename
func (c Config) Save(filename string) error {
	data, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return errors.Wrap(err, "save")
	}
	return errors.Wrap(os.WriteFile(filename, data, 0644), "save")
}
