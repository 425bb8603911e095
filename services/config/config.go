// Package config publishes the node's embedded configuration onto the bus.
// Each top-level key of the node's JSON object becomes a retained message on
// {"config", key}, so services that start later still see the current value.
package config

import (
	"context"
	"encoding/json"
	"errors"

	"nodelink-go/bus"
)

const (
	serviceName  = "config"
	configPrefix = "config"
	CtxNodeKey   = "node" // context key holding the node ID
)

// EmbeddedConfigLookup resolves a node ID to its raw config. Tests and
// simulators override this to inject their own documents.
var EmbeddedConfigLookup = func(node string) ([]byte, bool) {
	b, ok := embeddedConfigs[node]
	return b, ok
}

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	node, _ := ctx.Value(CtxNodeKey).(string)
	if node == "" {
		return errors.New("missing node ID in context")
	}

	raw, ok := EmbeddedConfigLookup(node)
	if !ok || len(raw) == 0 {
		return errors.New("no embedded config for node: " + node)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}

	for k, v := range m {
		conn.Publish(&bus.Message{
			Topic:    bus.T(configPrefix, k),
			Payload:  v,
			Retained: true,
		})
	}
	return nil
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			println("[config]", err.Error())
		}
	}()
}
