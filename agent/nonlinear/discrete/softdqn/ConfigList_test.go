package softdqn

import (
	"encoding/json"
	"testing"

	"github.com/samuelfneumann/softdqn/agent"
	"github.com/stretchr/testify/require"
)

func newSweep() agent.TypedConfigList {
	return NewConfigList(
		[]int{10_000},
		[]int{32, 64},
		[]float64{0.99},
		[]float64{1e-3, 1e-2},
		[]float64{5e-4},
		[]int{4},
		[]int64{0, 1, 2},
	)
}

func TestConfigListLen(t *testing.T) {
	require.Equal(t, 12, newSweep().Len())
	require.Equal(t, 0, ConfigList{}.Len())
}

func TestConfigListAt(t *testing.T) {
	sweep := newSweep()

	// Seeds vary fastest
	for i := 0; i < 3; i++ {
		c, err := sweep.At(i)
		require.NoError(t, err)
		require.Equal(t, int64(i), c.(Config).Seed())
		require.Equal(t, 32, c.(Config).BatchSize())
		require.Equal(t, 1e-3, c.(Config).Tau())
	}

	c, err := sweep.At(3)
	require.NoError(t, err)
	require.Equal(t, 1e-2, c.(Config).Tau())
	require.Equal(t, int64(0), c.(Config).Seed())

	// Batch size varies slowest among the swept fields
	c, err = sweep.At(11)
	require.NoError(t, err)
	require.Equal(t, 64, c.(Config).BatchSize())
	require.Equal(t, 1e-2, c.(Config).Tau())
	require.Equal(t, int64(2), c.(Config).Seed())

	configs, err := agent.Configs(sweep.ConfigList)
	require.NoError(t, err)
	require.Len(t, configs, 12)

	seen := make(map[Config]bool)
	for _, c := range configs {
		seen[c.(Config)] = true
	}
	require.Len(t, seen, 12)
}

func TestConfigListAtOutOfRange(t *testing.T) {
	sweep := newSweep()

	_, err := sweep.At(12)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = sweep.At(-1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestConfigListAtInvalid(t *testing.T) {
	sweep := NewConfigList([]int{10}, []int{64}, []float64{0.99},
		[]float64{1e-3}, []float64{5e-4}, []int{4}, []int64{0})

	_, err := sweep.At(0)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestTypedConfigListJSON(t *testing.T) {
	sweep := newSweep()

	data, err := json.Marshal(sweep)
	require.NoError(t, err)

	var decoded agent.TypedConfigList
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, agent.SoftUpdateDQN, decoded.Type)
	require.Equal(t, sweep.ConfigList, decoded.ConfigList)

	want, err := sweep.At(7)
	require.NoError(t, err)
	have, err := decoded.At(7)
	require.NoError(t, err)
	require.Equal(t, want, have)
}

func TestTypedConfigListUnregistered(t *testing.T) {
	var decoded agent.TypedConfigList
	err := json.Unmarshal([]byte(`{"Type": "Rainbow", "ConfigList": {}}`),
		&decoded)
	require.ErrorIs(t, err, agent.ErrUnregisteredType)
}
