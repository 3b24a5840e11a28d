package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

const testType Type = "Test"

type testConfig struct {
	Rate float64
}

func (t testConfig) Type() Type { return testType }

func (t testConfig) Validate() error {
	if t.Rate <= 0 {
		return fmt.Errorf("rate must be positive")
	}
	return nil
}

type testConfigList struct {
	Rate []float64
}

func (t testConfigList) Type() Type { return testType }
func (t testConfigList) Len() int { return len(t.Rate) }

func (t testConfigList) At(i int) (Config, error) {
	if i < 0 || i >= t.Len() {
		return nil, fmt.Errorf("index %v out of range", i)
	}
	return testConfig{Rate: t.Rate[i]}, nil
}

func init() {
	Register(testType, testConfig{}, testConfigList{})
}

func TestTypedConfigRoundTrip(t *testing.T) {
	typed := NewTypedConfig(testConfig{Rate: 0.5})

	data, err := json.Marshal(typed)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded TypedConfig
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.Type != testType {
		t.Errorf("unmarshal: type \n\twant(%v) \n\thave(%v)", testType,
			decoded.Type)
	}
	if decoded.Config != typed.Config {
		t.Errorf("unmarshal: config \n\twant(%v) \n\thave(%v)",
			typed.Config, decoded.Config)
	}
}

func TestTypedConfigListRoundTrip(t *testing.T) {
	typed := NewTypedConfigList(testConfigList{Rate: []float64{0.1, 0.2}})

	data, err := json.Marshal(typed)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded TypedConfigList
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	configs, err := Configs(decoded.ConfigList)
	if err != nil {
		t.Fatalf("configs: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("configs: want(2) have(%v)", len(configs))
	}
	if configs[1] != (testConfig{Rate: 0.2}) {
		t.Errorf("at: want(%v) have(%v)", testConfig{Rate: 0.2}, configs[1])
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := map[string]string{
		"missing type":  `{"Config": {}}`,
		"missing value": `{"Type": "Test"}`,
		"bad json":      `{"Type": `,
	}

	for name, data := range tests {
		var decoded TypedConfig
		if err := json.Unmarshal([]byte(data), &decoded); err == nil {
			t.Errorf("%v: expected error", name)
		}
	}

	var decoded TypedConfig
	err := json.Unmarshal([]byte(`{"Type": "Unknown", "Config": {}}`),
		&decoded)
	if !errors.Is(err, ErrUnregisteredType) {
		t.Errorf("unregistered: want(%v) have(%v)", ErrUnregisteredType, err)
	}
}

func TestIsRegistered(t *testing.T) {
	if !IsRegistered(testType) {
		t.Errorf("isRegistered: %v should be registered", testType)
	}
	if IsRegistered("Unknown") {
		t.Error("isRegistered: Unknown should not be registered")
	}
}
