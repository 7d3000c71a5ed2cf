// Package experiment implements functionality for running an experiment
package experiment

import (
	"github.com/samuelfneumann/qtetris/experiment/checkpointer"
	"github.com/samuelfneumann/qtetris/experiment/tracker"
	ts "github.com/samuelfneumann/qtetris/timestep"
)

// Experiment outlines structs that can run experiments. The Run()
// method runs all episodes of the experiment, while RunEpisode() runs
// a single episode using the state of the run held in a Context.
//
// At the end of each episode, Experiments send the episode's Summary
// to Trackers, which cache data to be saved at the end of the run, and
// to Checkpointers, which save models during the run.
type Experiment interface {
	Run() error
	RunEpisode(ctx *Context) (ts.Summary, error)

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment
	Register(t tracker.Tracker)

	// Adds a new checkpointer.Checkpointer to the experiment
	RegisterCheckpointer(c checkpointer.Checkpointer)

	// Save all tracked data to disk
	Save() error
}

// Context holds the state of a run which carries across episodes
type Context struct {
	Epoch  int     // Current episode
	Wins   int     // Steps with reward >= 1 over the whole run
	Record int     // Most stones placed in a single episode so far
	Steps  int     // Total environment steps over the whole run
	Loss   float64 // Cumulative loss of the current episode
}
