package softdqn_test

import (
	"encoding/json"
	"fmt"

	"github.com/samuelfneumann/softdqn/agent"
	"github.com/samuelfneumann/softdqn/agent/nonlinear/discrete/softdqn"
)

func ExampleNewConfig() {
	c := softdqn.NewConfig()
	fmt.Println(c.BufferSize(), c.BatchSize(), c.Gamma(), c.Tau(),
		c.LearningRate(), c.UpdateEvery(), c.Seed())
	// Output: 10000 64 0.99 0.001 0.0005 4 0
}

// A seed sweep serialized without knowing the concrete ConfigList type
func ExampleNewConfigList() {
	sweep := softdqn.NewConfigList(
		[]int{softdqn.DefaultBufferSize},
		[]int{softdqn.DefaultBatchSize},
		[]float64{softdqn.DefaultGamma},
		[]float64{softdqn.DefaultTau},
		[]float64{softdqn.DefaultLearningRate},
		[]int{softdqn.DefaultUpdateEvery},
		[]int64{0, 1},
	)

	data, err := json.Marshal(sweep)
	if err != nil {
		panic(err)
	}

	var decoded agent.TypedConfigList
	if err := json.Unmarshal(data, &decoded); err != nil {
		panic(err)
	}

	configs, err := agent.Configs(decoded.ConfigList)
	if err != nil {
		panic(err)
	}
	for _, c := range configs {
		fmt.Println(c)
	}
	// Output:
	// SoftUpdateDQN{BufferSize: 10000, BatchSize: 64, Gamma: 0.99, Tau: 0.001, LearningRate: 0.0005, UpdateEvery: 4, Seed: 0}
	// SoftUpdateDQN{BufferSize: 10000, BatchSize: 64, Gamma: 0.99, Tau: 0.001, LearningRate: 0.0005, UpdateEvery: 4, Seed: 1}
}
