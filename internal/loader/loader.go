// Package loader resolves a soft-update DQN configuration from layered
// sources. Precedence: CLI overrides > environment variables > config
// file > defaults.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samuelfneumann/softdqn/agent/nonlinear/discrete/softdqn"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SOFTDQN_"

// ErrUnsupportedFormat is returned for config files that are neither
// JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config file format")

// Overrides holds command-line overrides. Nil fields are left unset.
type Overrides struct {
	ConfigFile   string
	BufferSize   *int
	BatchSize    *int
	Gamma        *float64
	Tau          *float64
	LearningRate *float64
	UpdateEvery  *int
	Seed         *int64
}

// params holds hyperparameters while layers are applied
type params struct {
	bufferSize   int
	batchSize    int
	gamma        float64
	tau          float64
	learningRate float64
	updateEvery  int
	seed         int64
}

func fromConfig(c softdqn.Config) params {
	return params{
		bufferSize:   c.BufferSize(),
		batchSize:    c.BatchSize(),
		gamma:        c.Gamma(),
		tau:          c.Tau(),
		learningRate: c.LearningRate(),
		updateEvery:  c.UpdateEvery(),
		seed:         c.Seed(),
	}
}

// Load returns the Config described by the defaults, the config file
// named in overrides, the environment and the CLI overrides, in
// increasing order of precedence. A nil overrides uses only the
// defaults and the environment.
func Load(overrides *Overrides) (softdqn.Config, error) {
	p := fromConfig(softdqn.NewConfig())

	if overrides != nil && overrides.ConfigFile != "" {
		c, err := LoadFile(overrides.ConfigFile)
		if err != nil {
			return softdqn.Config{}, err
		}
		p = fromConfig(c)
	}

	if err := applyEnv(&p); err != nil {
		return softdqn.Config{}, err
	}

	if overrides != nil {
		applyOverrides(&p, overrides)
	}

	c, err := softdqn.New(p.bufferSize, p.batchSize, p.gamma, p.tau,
		p.learningRate, p.updateEvery, p.seed)
	if err != nil {
		return softdqn.Config{}, fmt.Errorf("load: %w", err)
	}
	return c, nil
}

// LoadFile reads a Config from a JSON (.json) or YAML (.yaml, .yml)
// file. Keys missing from the file keep their default value, and an
// empty file yields the defaults. Unknown keys are an error.
func LoadFile(path string) (softdqn.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return softdqn.Config{}, fmt.Errorf("read file: %w", err)
	}

	var c softdqn.Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&c)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&c)
	default:
		return softdqn.Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat,
			ext)
	}
	if errors.Is(err, io.EOF) {
		return softdqn.NewConfig(), nil
	}
	if err != nil {
		return softdqn.Config{}, fmt.Errorf("parse %v: %w", path, err)
	}

	return c, nil
}

func applyEnv(p *params) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"BUFFER_SIZE", &p.bufferSize},
		{"BATCH_SIZE", &p.batchSize},
		{"UPDATE_EVERY", &p.updateEvery},
	}
	for _, v := range ints {
		raw, ok := lookupEnv(v.name)
		if !ok {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return envError(v.name, raw, err)
		}
		*v.dst = value
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"GAMMA", &p.gamma},
		{"TAU", &p.tau},
		{"LEARNING_RATE", &p.learningRate},
	}
	for _, v := range floats {
		raw, ok := lookupEnv(v.name)
		if !ok {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return envError(v.name, raw, err)
		}
		*v.dst = value
	}

	if raw, ok := lookupEnv("SEED"); ok {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return envError("SEED", raw, err)
		}
		p.seed = value
	}

	return nil
}

// lookupEnv returns the trimmed value of EnvPrefix+name. Empty values
// are treated as unset.
func lookupEnv(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(EnvPrefix + name))
	return raw, raw != ""
}

func envError(name, raw string, err error) error {
	return fmt.Errorf("environment %v%v=%q: %w", EnvPrefix, name, raw, err)
}

func applyOverrides(p *params, o *Overrides) {
	if o.BufferSize != nil {
		p.bufferSize = *o.BufferSize
	}
	if o.BatchSize != nil {
		p.batchSize = *o.BatchSize
	}
	if o.Gamma != nil {
		p.gamma = *o.Gamma
	}
	if o.Tau != nil {
		p.tau = *o.Tau
	}
	if o.LearningRate != nil {
		p.learningRate = *o.LearningRate
	}
	if o.UpdateEvery != nil {
		p.updateEvery = *o.UpdateEvery
	}
	if o.Seed != nil {
		p.seed = *o.Seed
	}
}
