// Package network implements neural network function approximators
package network

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// MLP implements a multi-layered perceptron which predicts a vector of
// outputs, one per action, for each row of an input matrix.
//
// Computational graphs are built lazily for each batch size that the
// MLP is used with. All graphs share the weights held by the MLP, so
// an update made while training on one batch size is seen by every
// other batch size.
//
// MLP is not safe for concurrent use.
type MLP struct {
	features int
	outputs  int

	layers  []layerSpec
	weights []*tensor.Dense // Weights and biases, in layer order
	names   []string

	solver G.Solver

	predictGraphs map[int]*batchGraph
	trainGraphs   map[int]*batchGraph
}

// batchGraph is a computational graph of the MLP for a fixed batch size
type batchGraph struct {
	g      *G.ExprGraph
	input  *G.Node
	target *G.Node
	params G.Nodes

	predVal G.Value
	lossVal G.Value

	vm G.VM
}

// NewMLP creates and returns a new multi-layered perceptron taking
// features inputs and producing outputs values, as described by c.
//
// The MLP has len(c.HiddenSizes) + 1 layers. The final layer always has
// a bias unit and no activation.
func NewMLP(features, outputs int, c Config) (*MLP, error) {
	if features < 1 {
		return nil, fmt.Errorf("newMLP: features must be positive "+
			"\n\thave(%v)", features)
	}
	if outputs < 1 {
		return nil, fmt.Errorf("newMLP: outputs must be positive "+
			"\n\thave(%v)", outputs)
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "newMLP")
	}

	init, err := c.InitWFn.Create()
	if err != nil {
		return nil, errors.Wrap(err, "newMLP")
	}
	solver, err := c.Solver.Create()
	if err != nil {
		return nil, errors.Wrap(err, "newMLP")
	}

	// Add a final linear layer with no activation so that outputs
	// values are predicted by the network
	layers := make([]layerSpec, 0, len(c.HiddenSizes)+1)
	in := features
	for i, size := range c.HiddenSizes {
		layers = append(layers, layerSpec{in, size, c.Biases[i],
			c.Activations[i]})
		in = size
	}
	layers = append(layers, layerSpec{in, outputs, true, Identity()})

	m := &MLP{
		features:      features,
		outputs:       outputs,
		layers:        layers,
		solver:        solver,
		predictGraphs: make(map[int]*batchGraph),
		trainGraphs:   make(map[int]*batchGraph),
	}

	for i, l := range layers {
		w := init(tensor.Float64, l.inputs, l.outputs).([]float64)
		m.weights = append(m.weights, tensor.New(
			tensor.WithShape(l.inputs, l.outputs),
			tensor.WithBacking(w),
		))
		m.names = append(m.names, fmt.Sprintf("W%d", i))

		if l.bias {
			m.weights = append(m.weights, tensor.New(
				tensor.WithShape(1, l.outputs),
				tensor.WithBacking(make([]float64, l.outputs)),
			))
			m.names = append(m.names, fmt.Sprintf("b%d", i))
		}
	}

	return m, nil
}

// Features returns the number of features in a single input
func (m *MLP) Features() int {
	return m.features
}

// Outputs returns the number of values predicted for each input
func (m *MLP) Outputs() int {
	return m.outputs
}

// Layers returns the number of layers in the MLP, including the final
// linear layer
func (m *MLP) Layers() int {
	return len(m.layers)
}

// Predict returns the MLP's predictions for each row of states
func (m *MLP) Predict(states mat.Matrix) (*mat.Dense, error) {
	batch, cols := states.Dims()
	if cols != m.features {
		return nil, fmt.Errorf("predict: invalid number of features "+
			"\n\twant(%v) \n\thave(%v)", m.features, cols)
	}

	bg, err := m.graph(batch, false)
	if err != nil {
		return nil, errors.Wrap(err, "predict")
	}
	if err := m.setInputs(bg, states, nil); err != nil {
		return nil, errors.Wrap(err, "predict")
	}

	defer bg.vm.Reset()
	if err := bg.vm.RunAll(); err != nil {
		return nil, errors.Wrap(err, "predict")
	}

	return m.prediction(bg, batch), nil
}

// TrainOnBatch performs a single solver step which moves the MLP's
// predictions on inputs toward targets under the mean squared error.
// The loss on the batch before the step is returned.
func (m *MLP) TrainOnBatch(inputs, targets mat.Matrix) (float64, error) {
	batch, cols := inputs.Dims()
	if cols != m.features {
		return 0, fmt.Errorf("trainOnBatch: invalid number of features "+
			"\n\twant(%v) \n\thave(%v)", m.features, cols)
	}
	tr, tc := targets.Dims()
	if tr != batch || tc != m.outputs {
		return 0, fmt.Errorf("trainOnBatch: invalid target shape "+
			"\n\twant(%v x %v) \n\thave(%v x %v)", batch, m.outputs, tr, tc)
	}

	bg, err := m.graph(batch, true)
	if err != nil {
		return 0, errors.Wrap(err, "trainOnBatch")
	}
	if err := m.setInputs(bg, inputs, targets); err != nil {
		return 0, errors.Wrap(err, "trainOnBatch")
	}

	defer bg.vm.Reset()
	if err := bg.vm.RunAll(); err != nil {
		return 0, errors.Wrap(err, "trainOnBatch")
	}

	loss, err := scalar(bg.lossVal)
	if err != nil {
		return 0, errors.Wrap(err, "trainOnBatch")
	}

	if err := m.solver.Step(G.NodesToValueGrads(bg.params)); err != nil {
		return 0, errors.Wrap(err, "trainOnBatch")
	}

	// Solvers may replace rather than update the bound values
	for i, p := range bg.params {
		if err := copyInto(m.weights[i], p.Value()); err != nil {
			return 0, errors.Wrap(err, "trainOnBatch")
		}
	}

	return loss, nil
}

// graph returns the computational graph for the given batch size,
// building it if needed
func (m *MLP) graph(batch int, train bool) (*batchGraph, error) {
	if batch < 1 {
		return nil, fmt.Errorf("graph: batch size must be positive "+
			"\n\thave(%v)", batch)
	}

	cache := m.predictGraphs
	if train {
		cache = m.trainGraphs
	}
	if bg, ok := cache[batch]; ok {
		return bg, nil
	}

	bg, err := m.build(batch, train)
	if err != nil {
		return nil, err
	}
	cache[batch] = bg
	return bg, nil
}

// build constructs a new computational graph for a batch size. Graphs
// built for training also compute the loss and its gradient with
// respect to each weight.
func (m *MLP) build(batch int, train bool) (*batchGraph, error) {
	g := G.NewGraph()
	bg := &batchGraph{g: g}

	bg.input = G.NewMatrix(g, tensor.Float64, G.WithShape(batch, m.features),
		G.WithName("input"), G.WithInit(G.Zeroes()))

	bg.params = make(G.Nodes, len(m.weights))
	for i, w := range m.weights {
		bg.params[i] = G.NewMatrix(g, tensor.Float64,
			G.WithShape(w.Shape()...), G.WithName(m.names[i]),
			G.WithValue(w.Clone().(*tensor.Dense)))
	}

	pred := bg.input
	var err error
	p := 0
	for i, l := range m.layers {
		layer := fcLayer{weights: bg.params[p], act: l.act}
		p++
		if l.bias {
			layer.bias = bg.params[p]
			p++
		}

		if pred, err = layer.fwd(pred); err != nil {
			return nil, fmt.Errorf("build: could not compute forward pass "+
				"of layer %v: %v", i, err)
		}
	}
	G.Read(pred, &bg.predVal)

	if !train {
		bg.vm = G.NewTapeMachine(g)
		return bg, nil
	}

	bg.target = G.NewMatrix(g, tensor.Float64,
		G.WithShape(batch, m.outputs), G.WithName("target"),
		G.WithInit(G.Zeroes()))

	diff, err := G.Sub(pred, bg.target)
	if err != nil {
		return nil, errors.Wrap(err, "build")
	}
	sq, err := G.Square(diff)
	if err != nil {
		return nil, errors.Wrap(err, "build")
	}
	loss, err := G.Mean(sq)
	if err != nil {
		return nil, errors.Wrap(err, "build")
	}
	G.Read(loss, &bg.lossVal)

	if _, err := G.Grad(loss, bg.params...); err != nil {
		return nil, errors.Wrap(err, "build")
	}

	bg.vm = G.NewTapeMachine(g, G.BindDualValues(bg.params...))
	return bg, nil
}

// setInputs binds the current weights, the inputs, and optionally the
// targets to a graph before running it
func (m *MLP) setInputs(bg *batchGraph, inputs, targets mat.Matrix) error {
	for i, p := range bg.params {
		if err := copyInto(p.Value().(*tensor.Dense), m.weights[i]); err != nil {
			return err
		}
	}

	if err := G.Let(bg.input, toTensor(inputs)); err != nil {
		return err
	}
	if targets != nil {
		return G.Let(bg.target, toTensor(targets))
	}
	return nil
}

// prediction copies the predictions of the last run of a graph
func (m *MLP) prediction(bg *batchGraph, batch int) *mat.Dense {
	data := bg.predVal.Data().([]float64)
	out := make([]float64, len(data))
	copy(out, data)
	return mat.NewDense(batch, m.outputs, out)
}

// toTensor copies a matrix into a new tensor of the same shape
func toTensor(x mat.Matrix) *tensor.Dense {
	r, c := x.Dims()
	data := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = x.At(i, j)
		}
	}
	return tensor.New(tensor.WithShape(r, c), tensor.WithBacking(data))
}

// copyInto copies the data of a value into dst, which must have the
// same number of elements
func copyInto(dst *tensor.Dense, src G.Value) error {
	dstData := dst.Data().([]float64)
	srcData, ok := src.Data().([]float64)
	if !ok {
		return fmt.Errorf("copyInto: cannot copy value of type %T", src)
	}
	if len(dstData) != len(srcData) {
		return fmt.Errorf("copyInto: invalid number of values \n\twant(%v)"+
			"\n\thave(%v)", len(dstData), len(srcData))
	}
	copy(dstData, srcData)
	return nil
}

// scalar returns the single float64 held by a value
func scalar(v G.Value) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("scalar: no value")
	}
	switch data := v.Data().(type) {
	case float64:
		return data, nil
	case []float64:
		if len(data) == 1 {
			return data[0], nil
		}
	}
	return 0, fmt.Errorf("scalar: value %v is not a scalar", v)
}
