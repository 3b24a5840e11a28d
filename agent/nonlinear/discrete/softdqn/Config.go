// Package softdqn implements the configuration of a DQN agent whose
// target network is updated by Polyak averaging (soft updates) rather
// than by periodic hard copies of the online network.
package softdqn

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/softdqn/agent"
	"github.com/samuelfneumann/softdqn/solver"
	"github.com/samuelfneumann/softdqn/utils/floatutils"
	"github.com/samuelfneumann/softdqn/utils/polyak"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func init() {
	// Register the Config and ConfigList types so that they can be
	// typed using agent.TypedConfig and agent.TypedConfigList to help
	// with serialization/deserialization.
	agent.Register(agent.SoftUpdateDQN, Config{}, ConfigList{})
}

// Default hyperparameters
const (
	DefaultBufferSize   = 10_000 // Replay buffer size
	DefaultBatchSize    = 64     // Minibatch size
	DefaultGamma        = 0.99   // Discount factor
	DefaultTau          = 1e-3   // Soft update of target parameters
	DefaultLearningRate = 5e-4   // Learning rate
	DefaultUpdateEvery  = 4      // How often to update the network
	DefaultSeed         = 0
)

// ErrInvalidConfig is returned when a hyperparameter is outside of its
// domain.
var ErrInvalidConfig = errors.New("softdqn: invalid config")

// Config implements a configuration for a soft-update DQN agent.
//
// All fields are fixed at construction. A Config is a value: copies
// are independent and it may be read concurrently without
// synchronization. The zero value is not a valid configuration; use
// NewConfig, New or a decoder.
type Config struct {
	bufferSize   int
	batchSize    int
	gamma        float64
	tau          float64
	learningRate float64
	updateEvery  int
	seed         int64
}

// NewConfig returns a Config holding the default hyperparameters
func NewConfig() Config {
	return Config{
		bufferSize:   DefaultBufferSize,
		batchSize:    DefaultBatchSize,
		gamma:        DefaultGamma,
		tau:          DefaultTau,
		learningRate: DefaultLearningRate,
		updateEvery:  DefaultUpdateEvery,
		seed:         DefaultSeed,
	}
}

// New returns a new Config with the given hyperparameters, or an error
// if any of them is invalid.
func New(bufferSize, batchSize int, gamma, tau, learningRate float64,
	updateEvery int, seed int64) (Config, error) {
	c := Config{
		bufferSize:   bufferSize,
		batchSize:    batchSize,
		gamma:        gamma,
		tau:          tau,
		learningRate: learningRate,
		updateEvery:  updateEvery,
		seed:         seed,
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// BufferSize returns the capacity of the experience replay buffer
func (c Config) BufferSize() int { return c.bufferSize }

// BatchSize returns the number of samples drawn per training step
func (c Config) BatchSize() int { return c.batchSize }

// Gamma returns the discount factor
func (c Config) Gamma() float64 { return c.gamma }

// Tau returns the interpolation factor for soft target updates
func (c Config) Tau() float64 { return c.tau }

// LearningRate returns the optimizer step size
func (c Config) LearningRate() float64 { return c.learningRate }

// UpdateEvery returns the number of steps between network updates
func (c Config) UpdateEvery() int { return c.updateEvery }

// Seed returns the random seed
func (c Config) Seed() int64 { return c.seed }

// WithSeed returns a copy of the Config using a different seed
func (c Config) WithSeed(seed int64) Config {
	c.seed = seed
	return c
}

// Type returns the type of the configuration
func (c Config) Type() agent.Type {
	return agent.SoftUpdateDQN
}

// Validate checks a Config to ensure it is a valid configuration of a
// soft-update DQN agent.
func (c Config) Validate() error {
	if c.bufferSize < 1 {
		return invalid("buffer size must be positive", ">0", c.bufferSize)
	}

	if c.batchSize < 1 {
		return invalid("batch size must be positive", ">0", c.batchSize)
	}

	if c.batchSize > c.bufferSize {
		return invalid("batch size cannot exceed buffer size",
			fmt.Sprintf("<=%v", c.bufferSize), c.batchSize)
	}

	if !floatutils.InInterval(c.gamma, floatutils.Unit()) {
		return invalid("discount factor out of range", "0 <= γ <= 1",
			c.gamma)
	}

	if !(c.tau > 0) || !floatutils.InInterval(c.tau, floatutils.Unit()) {
		return invalid("soft update factor out of range", "0 < τ <= 1",
			c.tau)
	}

	if !(c.learningRate > 0) || !floatutils.IsFinite(c.learningRate) {
		return invalid("learning rate must be positive", ">0",
			c.learningRate)
	}

	if c.updateEvery < 1 {
		return invalid("networks must be updated at positive timestep "+
			"intervals", ">0", c.updateEvery)
	}

	return nil
}

func invalid(msg, want string, have interface{}) error {
	return fmt.Errorf("%w: %v \n\twant(%v) \n\thave(%v)", ErrInvalidConfig,
		msg, want, have)
}

// String returns a single-line summary of the Config
func (c Config) String() string {
	return fmt.Sprintf("%v{BufferSize: %v, BatchSize: %v, Gamma: %v, "+
		"Tau: %v, LearningRate: %v, UpdateEvery: %v, Seed: %v}", c.Type(),
		c.bufferSize, c.batchSize, c.gamma, c.tau, c.learningRate,
		c.updateEvery, c.seed)
}

// ShouldLearn returns whether the networks should be updated at the
// given timestep. Timesteps are counted from 1, so that learning
// happens on every UpdateEvery-th step. A Config with no valid update
// interval, such as the zero value, never learns.
func (c Config) ShouldLearn(step int) bool {
	return c.updateEvery > 0 && step > 0 && step%c.updateEvery == 0
}

// CanSample returns whether a replay buffer holding stored experiences
// has enough of them to draw a batch.
func (c Config) CanSample(stored int) bool {
	return stored > c.batchSize
}

// DiscountedReturn returns the sum of rewards discounted by Gamma,
// where rewards[k] is received k steps in the future.
func (c Config) DiscountedReturn(rewards []float64) float64 {
	ret := 0.0
	for k := len(rewards) - 1; k >= 0; k-- {
		ret = rewards[k] + c.gamma*ret
	}
	return ret
}

// Rand returns a new random number generator seeded with Seed. Each
// call returns an independent generator producing the same stream.
func (c Config) Rand() *rand.Rand {
	return rand.New(rand.NewSource(uint64(c.seed)))
}

// Solver returns the Adam solver that learns the online network's
// weights with the configured learning rate and batch size.
func (c Config) Solver() (*solver.Solver, error) {
	return solver.NewDefaultAdam(c.learningRate, c.batchSize)
}

// SoftUpdate moves the target parameters towards the source parameters
// in place, using Tau as the Polyak averaging constant.
func (c Config) SoftUpdate(target, source *mat.Dense) error {
	return polyak.Dense(target, source, c.tau)
}
