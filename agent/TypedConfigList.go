package agent

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// TypedConfig implements functionality for typing a Config. In this
// way, a Config can explicitly have its type stored so that when
// deserializing the Config, we can deserialize it into its concrete
// type without declaring beforehand a variable of its concrete type.
type TypedConfig struct {
	Type   Type
	Config Config
}

// NewTypedConfig types the argument Config and returns it as a
// TypedConfig which explicitly holds its Type.
func NewTypedConfig(c Config) TypedConfig {
	return TypedConfig{Type: c.Type(), Config: c}
}

// MarshalJSON implements the json.Marshaler interface
func (t TypedConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   Type
		Config Config
	}{t.Type, t.Config})
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (t *TypedConfig) UnmarshalJSON(data []byte) error {
	typeName, value, err := unmarshalTyped(data, "Config",
		func(r registration) reflect.Type { return r.config })
	if err != nil {
		return err
	}

	config, ok := value.(Config)
	if !ok {
		return fmt.Errorf("unmarshalJSON: type %T is not an agent.Config",
			value)
	}

	t.Type = typeName
	t.Config = config
	return nil
}

// TypedConfigList implements functionality for typing a ConfigList.
// In this way, a ConfigList can explicitly have its type stored so
// that when deserializing the ConfigList, we can deserialize it into
// its concrete type without knowing beforehand or declaring beforehand
// a variable of its concrete type.
type TypedConfigList struct {
	Type       Type
	ConfigList ConfigList
}

// NewTypedConfigList types the argument ConfigList and returns it
// as a TypedConfigList which explicitly holds its Type.
func NewTypedConfigList(c ConfigList) TypedConfigList {
	return TypedConfigList{Type: c.Type(), ConfigList: c}
}

// MarshalJSON implements the json.Marshaler interface
func (t TypedConfigList) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       Type
		ConfigList ConfigList
	}{t.Type, t.ConfigList})
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (t *TypedConfigList) UnmarshalJSON(data []byte) error {
	typeName, value, err := unmarshalTyped(data, "ConfigList",
		func(r registration) reflect.Type { return r.configList })
	if err != nil {
		return err
	}

	configs, ok := value.(ConfigList)
	if !ok {
		return fmt.Errorf("unmarshalJSON: type %T is not an "+
			"agent.ConfigList", value)
	}

	t.Type = typeName
	t.ConfigList = configs
	return nil
}

// Len returns the number of Configs in the TypedConfigList
func (t TypedConfigList) Len() int {
	return t.ConfigList.Len()
}

// At returns the Config at index i in the TypedConfigList
func (t TypedConfigList) At(i int) (Config, error) {
	return t.ConfigList.At(i)
}

// unmarshalTyped uses reflection to unmarshal the value stored under
// valueJsonField into the concrete type registered for the Type stored
// under the "Type" field. Both the Type and the concrete value are
// returned.
func unmarshalTyped(data []byte, valueJsonField string,
	concrete func(registration) reflect.Type) (Type, interface{}, error) {
	m := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &m); err != nil {
		return "", nil, err
	}

	rawType, ok := m["Type"]
	if !ok {
		return "", nil, fmt.Errorf("unmarshalJSON: missing field \"Type\"")
	}
	var typeName Type
	if err := json.Unmarshal(rawType, &typeName); err != nil {
		return "", nil, fmt.Errorf("unmarshalJSON: type: %w", err)
	}

	r, err := lookup(typeName)
	if err != nil {
		return "", nil, err
	}
	ty := concrete(r)

	rawValue, ok := m[valueJsonField]
	if !ok {
		return "", nil, fmt.Errorf("unmarshalJSON: missing field %q",
			valueJsonField)
	}

	value := reflect.New(ty)
	if err := json.Unmarshal(rawValue, value.Interface()); err != nil {
		return "", nil, fmt.Errorf("unmarshalJSON: %v: %w", typeName, err)
	}

	return typeName, value.Elem().Interface(), nil
}
