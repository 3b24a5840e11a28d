package softdqn

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/softdqn/agent"
)

// ErrIndexOutOfRange is returned when indexing outside a ConfigList
var ErrIndexOutOfRange = errors.New("softdqn: index out of range")

// ConfigList implements a list of Config's in a more efficient manner
// than simply using a slice of Config's. The list holds every
// combination of the hyperparameters in its fields.
type ConfigList struct {
	BufferSize   []int
	BatchSize    []int
	Gamma        []float64
	Tau          []float64
	LearningRate []float64
	UpdateEvery  []int
	Seed         []int64
}

// NewConfigList returns a new ConfigList as an agent.TypedConfigList.
// Because the returned value is a TypedConfigList, it can safely be
// JSON serialized and deserialized without specifying what the type of
// the ConfigList is.
func NewConfigList(bufferSize, batchSize []int, gamma, tau,
	learningRate []float64, updateEvery []int,
	seed []int64) agent.TypedConfigList {
	configs := ConfigList{
		BufferSize:   bufferSize,
		BatchSize:    batchSize,
		Gamma:        gamma,
		Tau:          tau,
		LearningRate: learningRate,
		UpdateEvery:  updateEvery,
		Seed:         seed,
	}

	return agent.NewTypedConfigList(configs)
}

// Type returns the type of Config stored in the list
func (c ConfigList) Type() agent.Type {
	return agent.SoftUpdateDQN
}

// Len returns the number of Config's in the list
func (c ConfigList) Len() int {
	return len(c.BufferSize) * len(c.BatchSize) * len(c.Gamma) *
		len(c.Tau) * len(c.LearningRate) * len(c.UpdateEvery) * len(c.Seed)
}

// At returns the Config at index i. The last field, Seed, varies
// fastest with i and the first field, BufferSize, varies slowest.
func (c ConfigList) At(i int) (agent.Config, error) {
	if i < 0 || i >= c.Len() {
		return nil, fmt.Errorf("%w \n\twant(0 <= i < %v) \n\thave(%v)",
			ErrIndexOutOfRange, c.Len(), i)
	}

	seed := c.Seed[i%len(c.Seed)]
	i /= len(c.Seed)
	updateEvery := c.UpdateEvery[i%len(c.UpdateEvery)]
	i /= len(c.UpdateEvery)
	learningRate := c.LearningRate[i%len(c.LearningRate)]
	i /= len(c.LearningRate)
	tau := c.Tau[i%len(c.Tau)]
	i /= len(c.Tau)
	gamma := c.Gamma[i%len(c.Gamma)]
	i /= len(c.Gamma)
	batchSize := c.BatchSize[i%len(c.BatchSize)]
	i /= len(c.BatchSize)
	bufferSize := c.BufferSize[i%len(c.BufferSize)]

	config, err := New(bufferSize, batchSize, gamma, tau, learningRate,
		updateEvery, seed)
	if err != nil {
		return nil, err
	}
	return config, nil
}
