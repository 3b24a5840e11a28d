package agent

// Config represents a configuration of an agent's hyperparameters.
//
// Configs are values: once constructed, a Config never changes, so it
// may be shared between any number of goroutines.
type Config interface {
	// Type returns the Type of agent the Config describes
	Type() Type

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error
}

// ConfigList represents a list of Configs for a single Type, used for
// hyperparameter sweeps.
type ConfigList interface {
	// Type returns the Type of the Configs in the list
	Type() Type

	// Len returns the number of Configs in the list
	Len() int

	// At returns the Config at index i
	At(i int) (Config, error)
}

// Configs returns every Config stored in a ConfigList, in index order.
func Configs(c ConfigList) ([]Config, error) {
	configs := make([]Config, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		config, err := c.At(i)
		if err != nil {
			return nil, err
		}
		configs = append(configs, config)
	}
	return configs, nil
}
