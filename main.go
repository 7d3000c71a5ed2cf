package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/golang/glog"

	"github.com/samuelfneumann/qtetris/experiment"
	"github.com/samuelfneumann/qtetris/experiment/checkpointer"
	"github.com/samuelfneumann/qtetris/experiment/tracker"
	"github.com/samuelfneumann/qtetris/network"
)

var (
	configFile = flag.String("config", "", "JSON experiment config; "+
		"defaults are used if empty")
	outDir = flag.String("out", ".", "directory to save models and "+
		"tracked data to")
	resume = flag.String("resume", "", "weights file to initialize "+
		"the network from")
	progress = flag.Bool("progress", false, "draw a progress bar to "+
		"stdout")
	saveConfig = flag.Bool("save_config", false, "save the experiment "+
		"config used to the output directory")
	checkpointEvery = flag.Int("checkpoint_every", 0, "also save the "+
		"weights every n episodes, 0 to disable")
	timestamp = flag.Bool("timestamp", false, "suffix periodic "+
		"checkpoints with the time instead of a counter")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	config := experiment.DefaultConfig()
	if *configFile != "" {
		var err error
		config, err = experiment.LoadConfig(*configFile)
		if err != nil {
			glog.Exitf("could not load config: %v", err)
		}
	}
	if err := config.Validate(); err != nil {
		glog.Exitf("invalid config: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		glog.Exitf("could not create output directory: %v", err)
	}
	out := func(name string) string {
		return filepath.Join(*outDir, name)
	}
	if *saveConfig {
		if err := config.Save(out("config.json")); err != nil {
			glog.Exitf("could not save config: %v", err)
		}
	}

	e, err := config.EnvConf.CreateEnv(config.Seed)
	if err != nil {
		glog.Exitf("could not create environment: %v", err)
	}

	mlp, err := network.NewMLP(e.ObservationSpec().Len(),
		config.AgentConf.NumActions, config.NetworkConf)
	if err != nil {
		glog.Exitf("could not create network: %v", err)
	}
	if *resume != "" {
		if err := mlp.LoadWeights(*resume); err != nil {
			glog.Exitf("could not resume from %v: %v", *resume, err)
		}
		glog.Infof("Loaded weights from %v", *resume)
	}

	a, err := config.AgentConf.CreateAgent(e, mlp, config.Seed)
	if err != nil {
		glog.Exitf("could not create agent: %v", err)
	}
	glog.V(1).Info(a)

	trackers := []tracker.Tracker{
		tracker.NewLoss(out("loss.bin")),
		tracker.NewScore(out("score.bin")),
		tracker.NewLines(out("lines.bin")),
		tracker.NewStones(out("stones.bin")),
		tracker.NewReturn(out("return.bin")),
		tracker.NewEpisodeLength(out("length.bin")),
	}
	if *progress {
		trackers = append(trackers, tracker.NewProgress(os.Stdout, 50,
			config.Epochs))
	}

	checkpointers := []checkpointer.Checkpointer{
		checkpointer.NewRecord(mlp, checkpointer.Fixed(out("weights.bin"))),
		checkpointer.NewFinal(mlp, out("model.bin")),
		checkpointer.NewFinalFunc(mlp.SaveArchitecture, out("model.json")),
	}

	if *checkpointEvery > 0 {
		filename := checkpointer.FilenameEnumerator(0, out("checkpoint-"),
			".bin")
		if *timestamp {
			filename = checkpointer.FileTimer(out("checkpoint"), ".bin")
		}
		periodic, err := checkpointer.NewNEpisode(*checkpointEvery, mlp,
			filename)
		if err != nil {
			glog.Exitf("could not create checkpointer: %v", err)
		}
		checkpointers = append(checkpointers, periodic)
	}

	o, err := experiment.NewOnline(e, a, config.Epochs, config.MaxSteps,
		trackers, checkpointers)
	if err != nil {
		glog.Exitf("could not create experiment: %v", err)
	}

	if err := o.Run(); err != nil {
		glog.Exitf("experiment failed: %v", err)
	}
}
