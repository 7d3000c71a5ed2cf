package initwfn

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func TestCreateShapes(t *testing.T) {
	configs := []Config{
		NewGlorotU(1),
		NewGlorotN(1),
		NewHeU(1),
		NewHeN(1),
		NewZeroes(),
		NewOnes(),
		NewConstant(0.5),
		NewGaussian(0, 0.1),
		NewUniform(-1, 1),
	}

	for _, c := range configs {
		init, err := c.Create()
		require.NoError(t, err, "%v", c.Type)

		values, ok := init(tensor.Float64, 3, 4).([]float64)
		require.True(t, ok, "%v", c.Type)
		require.Len(t, values, 12, "%v", c.Type)
	}
}

func TestConstantValues(t *testing.T) {
	init, err := NewConstant(0.5).Create()
	require.NoError(t, err)
	for _, v := range init(tensor.Float64, 2, 2).([]float64) {
		require.Equal(t, 0.5, v)
	}

	init, err = NewZeroes().Create()
	require.NoError(t, err)
	for _, v := range init(tensor.Float64, 2, 2).([]float64) {
		require.Equal(t, 0.0, v)
	}
}

func TestValidate(t *testing.T) {
	invalid := []Config{
		NewGlorotU(0),
		NewGaussian(0, 0),
		NewUniform(1, 1),
		{Type: "Orthogonal"},
	}
	for _, c := range invalid {
		_, err := c.Create()
		require.Error(t, err, "%+v", c)
	}
}

func TestJSON(t *testing.T) {
	var c Config
	require.NoError(t, json.Unmarshal([]byte(`{"Type": "HeN", "Gain": 2}`),
		&c))
	require.Equal(t, NewHeN(2), c)
}
