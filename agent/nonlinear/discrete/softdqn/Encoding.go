package softdqn

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnknownField is returned when decoding a Config from YAML that
// holds a key which is not a hyperparameter.
var ErrUnknownField = errors.New("softdqn: unknown field")

// yamlKeys are the keys accepted when decoding a Config from YAML
var yamlKeys = map[string]bool{
	"buffer_size":   true,
	"batch_size":    true,
	"gamma":         true,
	"tau":           true,
	"learning_rate": true,
	"update_every":  true,
	"seed":          true,
}

// jsonConfig is the serialized form of a Config. Nil fields keep their
// default value when decoding.
type jsonConfig struct {
	BufferSize   *int     `json:",omitempty" yaml:"buffer_size,omitempty"`
	BatchSize    *int     `json:",omitempty" yaml:"batch_size,omitempty"`
	Gamma        *float64 `json:",omitempty" yaml:"gamma,omitempty"`
	Tau          *float64 `json:",omitempty" yaml:"tau,omitempty"`
	LearningRate *float64 `json:",omitempty" yaml:"learning_rate,omitempty"`
	UpdateEvery  *int     `json:",omitempty" yaml:"update_every,omitempty"`
	Seed         *int64   `json:",omitempty" yaml:"seed,omitempty"`
}

func (c Config) serialized() jsonConfig {
	return jsonConfig{
		BufferSize:   &c.bufferSize,
		BatchSize:    &c.batchSize,
		Gamma:        &c.gamma,
		Tau:          &c.tau,
		LearningRate: &c.learningRate,
		UpdateEvery:  &c.updateEvery,
		Seed:         &c.seed,
	}
}

// apply overlays the set fields of s onto the defaults and validates
// the result
func (s jsonConfig) apply() (Config, error) {
	c := NewConfig()
	if s.BufferSize != nil {
		c.bufferSize = *s.BufferSize
	}
	if s.BatchSize != nil {
		c.batchSize = *s.BatchSize
	}
	if s.Gamma != nil {
		c.gamma = *s.Gamma
	}
	if s.Tau != nil {
		c.tau = *s.Tau
	}
	if s.LearningRate != nil {
		c.learningRate = *s.LearningRate
	}
	if s.UpdateEvery != nil {
		c.updateEvery = *s.UpdateEvery
	}
	if s.Seed != nil {
		c.seed = *s.Seed
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// MarshalJSON implements the json.Marshaler interface
func (c Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.serialized())
}

// UnmarshalJSON implements the json.Unmarshaler interface. Fields
// missing from data keep their default value. Unknown fields are an
// error.
func (c *Config) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var s jsonConfig
	if err := dec.Decode(&s); err != nil {
		return err
	}

	config, err := s.apply()
	if err != nil {
		return err
	}
	*c = config
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface
func (c Config) MarshalYAML() (interface{}, error) {
	return c.serialized(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface. Fields
// missing from the node keep their default value. Unknown keys are an
// error.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	// A decoder's KnownFields setting does not reach custom unmarshalers,
	// so keys are checked here.
	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := value.Content[i]
			if !yamlKeys[key.Value] {
				return fmt.Errorf("%w %q (line %v)", ErrUnknownField,
					key.Value, key.Line)
			}
		}
	}

	var s jsonConfig
	if err := value.Decode(&s); err != nil {
		return err
	}

	config, err := s.apply()
	if err != nil {
		return err
	}
	*c = config
	return nil
}
