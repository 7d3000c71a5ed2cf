package experiment

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/samuelfneumann/qtetris/agent"
	env "github.com/samuelfneumann/qtetris/environment"
	"github.com/samuelfneumann/qtetris/experiment/checkpointer"
	"github.com/samuelfneumann/qtetris/experiment/tracker"
	ts "github.com/samuelfneumann/qtetris/timestep"
)

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed. After every environment step the agent
// observes the resulting transition and is given the chance to update.
type Online struct {
	env    env.Environment
	agent  agent.Agent
	epochs int
	ender  env.Ender

	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The epochs parameter determines how
// many episodes are run, and maxSteps limits the number of steps in
// each episode, with 0 meaning no limit.
func NewOnline(e env.Environment, a agent.Agent, epochs, maxSteps int,
	t []tracker.Tracker, c []checkpointer.Checkpointer) (*Online, error) {
	if epochs < 1 {
		return nil, errors.Errorf("newOnline: epochs must be positive "+
			"\n\thave(%v)", epochs)
	}
	if maxSteps < 0 {
		return nil, errors.Errorf("newOnline: max steps must be "+
			"non-negative \n\thave(%v)", maxSteps)
	}

	return &Online{
		env:           e,
		agent:         a,
		epochs:        epochs,
		ender:         env.NewStepLimit(maxSteps),
		trackers:      t,
		checkpointers: c,
	}, nil
}

// Register registers a tracker.Tracker with the experiment so that
// data generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RegisterCheckpointer registers a checkpointer.Checkpointer with the
// experiment
func (o *Online) RegisterCheckpointer(c checkpointer.Checkpointer) {
	o.checkpointers = append(o.checkpointers, c)
}

// Run runs all episodes of the experiment and then saves all tracked
// data
func (o *Online) Run() error {
	ctx := &Context{}
	for ctx.Epoch = 0; ctx.Epoch < o.epochs; ctx.Epoch++ {
		if _, err := o.RunEpisode(ctx); err != nil {
			return errors.Wrapf(err, "run: episode %d", ctx.Epoch)
		}
	}

	glog.Infof("Finished %d episodes | Wins %d | Record %d | Steps %d",
		o.epochs, ctx.Wins, ctx.Record, ctx.Steps)
	return o.Save()
}

// RunEpisode runs a single episode of the experiment, updating the run
// state held in ctx
func (o *Online) RunEpisode(ctx *Context) (ts.Summary, error) {
	ctx.Loss = 0

	step, err := o.env.Reset()
	if err != nil {
		return ts.Summary{}, errors.Wrap(err, "runEpisode: reset")
	}

	var ret float64
	steps := 0
	done := step.Last()
	for !done && !o.ender.End(step) {
		action, err := o.agent.SelectAction(step.Observation)
		if err != nil {
			return ts.Summary{}, errors.Wrap(err, "runEpisode")
		}

		var next ts.TimeStep
		next, done, err = o.env.Step(action)
		if err != nil {
			return ts.Summary{}, errors.Wrap(err, "runEpisode")
		}
		if next.Reward >= 1 {
			ctx.Wins++
		}
		ret += next.Reward
		steps++
		ctx.Steps++

		transition := ts.NewTransition(step, action, next)
		transition.Terminal = done || next.Last()
		if err := o.agent.Observe(transition); err != nil {
			return ts.Summary{}, errors.Wrap(err, "runEpisode")
		}

		loss, trained, err := o.agent.Step()
		if err != nil {
			return ts.Summary{}, errors.Wrap(err, "runEpisode")
		}
		if trained {
			ctx.Loss += loss
		}

		if glog.V(1) {
			glog.Infof("epoch %d step %d | action %d | reward %v | loss %.4f",
				ctx.Epoch, next.Number, action, next.Reward, loss)
		}
		step = next
	}

	summary := ts.Summary{
		Epoch:  ctx.Epoch,
		Epochs: o.epochs,
		Loss:   ctx.Loss,
		Return: ret,
		Steps:  steps,
		Wins:   ctx.Wins,
		Record: ctx.Record,
	}
	if counter, ok := o.env.(env.Counter); ok {
		summary.Score = counter.Score()
		summary.Lines = counter.Lines()
		summary.Stones = counter.StoneCount()
	}
	summary.NewRecord = summary.Stones > ctx.Record

	glog.Info(summary)
	o.track(summary)
	if err := o.checkpoint(summary); err != nil {
		return summary, err
	}

	if summary.NewRecord {
		glog.Infof("Increased record from %d to %d", ctx.Record,
			summary.Stones)
		ctx.Record = summary.Stones
	}

	return summary, nil
}

// Save saves the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return errors.Wrap(err, "save")
		}
	}
	return nil
}

// track tracks the summary of an episode by caching its data in each
// Tracker
func (o *Online) track(s ts.Summary) {
	for _, t := range o.trackers {
		t.Track(s)
	}
}

// checkpoint sends the summary of an episode to each Checkpointer
func (o *Online) checkpoint(s ts.Summary) error {
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(s); err != nil {
			return errors.Wrap(err, "checkpoint")
		}
	}
	return nil
}
