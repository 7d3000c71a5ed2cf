package network

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/qtetris/initwfn"
	"github.com/samuelfneumann/qtetris/solver"
)

func smallConfig() Config {
	return Config{
		HiddenSizes: []int{8},
		Biases:      []bool{true},
		Activations: []*Activation{TanH()},
		InitWFn:     initwfn.NewGlorotU(1.0),
		Solver:      solver.NewVanilla(0.1, 1, -1),
	}
}

func batch() (*mat.Dense, *mat.Dense) {
	inputs := mat.NewDense(4, 3, []float64{
		0, 0, 1,
		0, 1, 0,
		1, 0, 0,
		1, 1, 1,
	})
	targets := mat.NewDense(4, 2, []float64{
		0.5, -0.5,
		0.2, 0.1,
		-0.3, 0.4,
		0.0, 0.25,
	})
	return inputs, targets
}

func TestNewMLPInvalid(t *testing.T) {
	_, err := NewMLP(0, 2, smallConfig())
	require.Error(t, err)

	_, err = NewMLP(3, 0, smallConfig())
	require.Error(t, err)

	c := smallConfig()
	c.Biases = nil
	_, err = NewMLP(3, 2, c)
	require.Error(t, err)

	c = smallConfig()
	c.Activations = []*Activation{nil}
	_, err = NewMLP(3, 2, c)
	require.Error(t, err)
}

func TestPredictShape(t *testing.T) {
	m, err := NewMLP(3, 2, smallConfig())
	require.NoError(t, err)
	require.Equal(t, 3, m.Features())
	require.Equal(t, 2, m.Outputs())
	require.Equal(t, 2, m.Layers())

	inputs, _ := batch()
	pred, err := m.Predict(inputs)
	require.NoError(t, err)
	r, c := pred.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 2, c)

	_, err = m.Predict(mat.NewDense(1, 4, nil))
	require.Error(t, err)
}

func TestPredictZeroWeights(t *testing.T) {
	c := smallConfig()
	c.InitWFn = initwfn.NewZeroes()
	m, err := NewMLP(3, 2, c)
	require.NoError(t, err)

	inputs, _ := batch()
	pred, err := m.Predict(inputs)
	require.NoError(t, err)
	require.Equal(t, 0.0, mat.Sum(pred))
}

func TestPredictConsistentAcrossBatches(t *testing.T) {
	m, err := NewMLP(3, 2, smallConfig())
	require.NoError(t, err)

	inputs, _ := batch()
	full, err := m.Predict(inputs)
	require.NoError(t, err)

	// Predict must not change the model
	again, err := m.Predict(inputs)
	require.NoError(t, err)
	require.Equal(t, full.RawMatrix().Data, again.RawMatrix().Data)

	for i := 0; i < 4; i++ {
		single, err := m.Predict(inputs.Slice(i, i+1, 0, 3))
		require.NoError(t, err)
		for j := 0; j < 2; j++ {
			require.InDelta(t, full.At(i, j), single.At(0, j), 1e-12)
		}
	}
}

func TestTrainOnBatchReducesLoss(t *testing.T) {
	m, err := NewMLP(3, 2, smallConfig())
	require.NoError(t, err)

	inputs, targets := batch()
	first, err := m.TrainOnBatch(inputs, targets)
	require.NoError(t, err)

	var last float64
	for i := 0; i < 300; i++ {
		last, err = m.TrainOnBatch(inputs, targets)
		require.NoError(t, err)
	}
	require.Less(t, last, first)

	// Updates are shared with graphs of other batch sizes
	full, err := m.Predict(inputs)
	require.NoError(t, err)
	single, err := m.Predict(inputs.Slice(0, 1, 0, 3))
	require.NoError(t, err)
	require.InDelta(t, full.At(0, 0), single.At(0, 0), 1e-12)
	require.InDelta(t, full.At(0, 1), single.At(0, 1), 1e-12)
}

func TestTrainOnBatchLossMatchesPrediction(t *testing.T) {
	m, err := NewMLP(3, 2, smallConfig())
	require.NoError(t, err)

	inputs, targets := batch()
	pred, err := m.Predict(inputs)
	require.NoError(t, err)

	var diff mat.Dense
	diff.Sub(pred, targets)
	diff.MulElem(&diff, &diff)
	want := mat.Sum(&diff) / 8

	loss, err := m.TrainOnBatch(inputs, targets)
	require.NoError(t, err)
	require.InDelta(t, want, loss, 1e-9)
}

func TestTrainOnBatchInvalid(t *testing.T) {
	m, err := NewMLP(3, 2, smallConfig())
	require.NoError(t, err)

	inputs, _ := batch()
	_, err = m.TrainOnBatch(inputs, mat.NewDense(4, 3, nil))
	require.Error(t, err)

	_, err = m.TrainOnBatch(inputs, mat.NewDense(3, 2, nil))
	require.Error(t, err)
}

func TestSaveLoadWeights(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "weights.bin")

	m, err := NewMLP(3, 2, smallConfig())
	require.NoError(t, err)
	inputs, targets := batch()
	for i := 0; i < 10; i++ {
		_, err = m.TrainOnBatch(inputs, targets)
		require.NoError(t, err)
	}
	require.NoError(t, m.SaveWeights(filename))

	want, err := m.Predict(inputs)
	require.NoError(t, err)

	loaded, err := NewMLP(3, 2, smallConfig())
	require.NoError(t, err)
	require.NoError(t, loaded.LoadWeights(filename))

	have, err := loaded.Predict(inputs)
	require.NoError(t, err)
	require.Equal(t, want.RawMatrix().Data, have.RawMatrix().Data)

	// Weights from a differently shaped network are rejected
	other, err := NewMLP(3, 5, smallConfig())
	require.NoError(t, err)
	require.Error(t, other.LoadWeights(filename))
}

func TestSaveArchitecture(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "model.json")

	m, err := NewMLP(230, 6, Default())
	require.NoError(t, err)
	require.NoError(t, m.SaveArchitecture(filename))

	arch, err := LoadArchitecture(filename)
	require.NoError(t, err)
	require.Equal(t, 230, arch.Features)
	require.Equal(t, 6, arch.Outputs)
	require.Len(t, arch.Layers, 3)
	require.Equal(t, "relu", arch.Layers[0].Activation.String())
	require.Equal(t, 230, arch.Layers[1].Inputs)
	require.Equal(t, 6, arch.Layers[2].Outputs)
	require.True(t, arch.Layers[2].Activation.IsIdentity())
}

func TestActivationJSON(t *testing.T) {
	acts := []*Activation{ReLU(), TanH(), Sigmoid(), Identity()}
	data, err := json.Marshal(acts)
	require.NoError(t, err)
	require.JSONEq(t, `["relu", "tanh", "sigmoid", "identity"]`, string(data))

	var decoded []*Activation
	require.NoError(t, json.Unmarshal(data, &decoded))
	for i := range acts {
		require.Equal(t, acts[i].String(), decoded[i].String())
	}

	require.Error(t, json.Unmarshal([]byte(`["softplus"]`), &decoded))
}

func TestConfigJSON(t *testing.T) {
	data, err := json.Marshal(Default())
	require.NoError(t, err)

	var c Config
	require.NoError(t, json.Unmarshal(data, &c))
	require.NoError(t, c.Validate())
	require.Equal(t, []int{230, 230}, c.HiddenSizes)
	require.Equal(t, "relu", c.Activations[1].String())
}
