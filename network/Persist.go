package network

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// savedWeights is the on-disk format of an MLP's weights
type savedWeights struct {
	Names  []string
	Shapes [][]int
	Data   [][]float64
}

// LayerDescription describes a single fully connected layer
type LayerDescription struct {
	Inputs     int
	Outputs    int
	Bias       bool
	Activation *Activation
}

// Architecture describes the layers of an MLP
type Architecture struct {
	Features int
	Outputs  int
	Layers   []LayerDescription
}

// Architecture returns a description of the MLP's layers
func (m *MLP) Architecture() Architecture {
	layers := make([]LayerDescription, len(m.layers))
	for i, l := range m.layers {
		layers[i] = LayerDescription{
			Inputs:     l.inputs,
			Outputs:    l.outputs,
			Bias:       l.bias,
			Activation: l.act,
		}
	}
	return Architecture{
		Features: m.features,
		Outputs:  m.outputs,
		Layers:   layers,
	}
}

// SaveArchitecture saves a JSON description of the MLP's layers
func (m *MLP) SaveArchitecture(filename string) error {
	data, err := json.MarshalIndent(m.Architecture(), "", "\t")
	if err != nil {
		return errors.Wrap(err, "saveArchitecture")
	}
	return errors.Wrap(os.WriteFile(filename, data, 0644),
		"saveArchitecture")
}

// LoadArchitecture loads a description of an MLP's layers saved by
// SaveArchitecture
func LoadArchitecture(filename string) (Architecture, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Architecture{}, errors.Wrap(err, "loadArchitecture")
	}

	var a Architecture
	if err := json.Unmarshal(data, &a); err != nil {
		return Architecture{}, errors.Wrap(err, "loadArchitecture")
	}
	return a, nil
}

// SaveWeights saves the MLP's weights to a file
func (m *MLP) SaveWeights(filename string) error {
	saved := savedWeights{
		Names:  m.names,
		Shapes: make([][]int, len(m.weights)),
		Data:   make([][]float64, len(m.weights)),
	}
	for i, w := range m.weights {
		saved.Shapes[i] = []int(w.Shape())
		saved.Data[i] = w.Data().([]float64)
	}

	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "saveWeights")
	}
	defer file.Close()

	enc := gob.NewEncoder(file)
	if err := enc.Encode(saved); err != nil {
		return errors.Wrap(err, "saveWeights")
	}
	return file.Sync()
}

// LoadWeights replaces the MLP's weights with those saved by
// SaveWeights. The saved weights must have been produced by an MLP with
// the same architecture.
func (m *MLP) LoadWeights(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "loadWeights")
	}
	defer file.Close()

	var saved savedWeights
	if err := gob.NewDecoder(file).Decode(&saved); err != nil {
		return errors.Wrap(err, "loadWeights")
	}

	if len(saved.Data) != len(m.weights) || len(saved.Shapes) != len(m.weights) {
		return fmt.Errorf("loadWeights: invalid number of weights "+
			"\n\twant(%v) \n\thave(%v)", len(m.weights), len(saved.Data))
	}
	for i, w := range m.weights {
		shape := w.Shape()
		if len(saved.Shapes[i]) != len(shape) {
			return fmt.Errorf("loadWeights: invalid shape for %v "+
				"\n\twant(%v) \n\thave(%v)", m.names[i], shape, saved.Shapes[i])
		}
		for j := range shape {
			if shape[j] != saved.Shapes[i][j] {
				return fmt.Errorf("loadWeights: invalid shape for %v "+
					"\n\twant(%v) \n\thave(%v)", m.names[i], shape,
					saved.Shapes[i])
			}
		}
	}

	for i, w := range m.weights {
		copy(w.Data().([]float64), saved.Data[i])
	}
	return nil
}
