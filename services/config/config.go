// Package config publishes the embedded boot configuration for a board as
// retained bus messages, one per top-level key. Services pick up their own
// section (the pin service listens on config/pins) without knowing where the
// document came from.
package config

import (
	"context"
	"encoding/json"
	"errors"

	"pinctl-go/bus"
)

const (
	serviceName  = "config"
	configPrefix = "config"
	CtxBoardKey  = ctxBoardKey("board") // context key carrying the board ID
)

type ctxBoardKey string

// EmbeddedConfigLookup resolves a board ID to its embedded document. Tests
// and alternative build pipelines may replace it.
var EmbeddedConfigLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedConfigs[board]
	return b, ok
}

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// publishConfig decodes the board's embedded document and publishes each
// top-level section retained under config/<key>.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	board, _ := ctx.Value(CtxBoardKey).(string)
	if board == "" {
		return errors.New("missing board ID in context")
	}

	raw, ok := EmbeddedConfigLookup(board)
	if !ok || len(raw) == 0 {
		return errors.New("no embedded config for board: " + board)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}

	for k, v := range m {
		conn.Publish(&bus.Message{
			Topic:    bus.Topic{configPrefix, k},
			Payload:  v,
			Retained: true,
		})
	}
	return nil
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		_ = s.publishConfig(ctx, conn)
	}()
}
