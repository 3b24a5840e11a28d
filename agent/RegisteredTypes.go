package agent

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// Type represents a specific type of an agent Config.
type Type string

const (
	// SoftUpdateDQN is a DQN agent whose target network tracks the
	// online network by Polyak averaging.
	SoftUpdateDQN Type = "SoftUpdateDQN"
)

// ErrUnregisteredType is returned when deserializing a Config or
// ConfigList whose Type has not been registered.
var ErrUnregisteredType = errors.New("unregistered agent type")

// registration holds the concrete types registered for an agent Type
type registration struct {
	config     reflect.Type
	configList reflect.Type
}

// Registered types with the package. Once a Type has been registered,
// a TypedConfig or TypedConfigList with that type can be deserialized.
//
// No Type's are registered with this package upon initialization.
// Each separate package registers its own Type to avoid circular
// imports.
var (
	registeredTypes   = make(map[Type]registration)
	registeredTypesMu sync.RWMutex
)

// Register registers an agent's Type with a concrete Config type and
// ConfigList type. Registering the same Type twice replaces the
// previous registration.
func Register(agentType Type, config Config, configs ConfigList) {
	registeredTypesMu.Lock()
	defer registeredTypesMu.Unlock()

	registeredTypes[agentType] = registration{
		config:     reflect.TypeOf(config),
		configList: reflect.TypeOf(configs),
	}
}

// IsRegistered returns whether a Type has been registered
func IsRegistered(agentType Type) bool {
	_, err := lookup(agentType)
	return err == nil
}

func lookup(agentType Type) (registration, error) {
	registeredTypesMu.RLock()
	defer registeredTypesMu.RUnlock()

	r, ok := registeredTypes[agentType]
	if !ok {
		return registration{}, fmt.Errorf("%w: %q", ErrUnregisteredType,
			agentType)
	}
	return r, nil
}
