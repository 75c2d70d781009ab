package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnavailable     = errors.New("ai provider not configured")
	ErrNoModelListing  = errors.New("provider does not list models")
	ErrRequestFailed   = errors.New("model endpoint request failed")
	ErrStreamInterrupt = errors.New("generation stream interrupted")
)

// ModelInfo describes one model hosted by the runner.
type ModelInfo struct {
	Name       string `json:"name"`
	ModifiedAt string `json:"modified_at,omitempty"`
	Size       int64  `json:"size,omitempty"`
}

// Provider is a model runner backend. GenerateStream invokes fn once per
// decoded chunk, in order, on the calling goroutine; returning an error from
// fn aborts the stream.
type Provider interface {
	Name() string
	Generate(ctx context.Context, model string, prompt string) (string, error)
	GenerateStream(ctx context.Context, model string, prompt string, fn func(StreamChunk) error) error
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

type ProviderFactory func(args interface{}) (Provider, error)

var registry = map[string]ProviderFactory{}

func Register(name string, factory ProviderFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registry[key] = factory
}

func NewProvider(name string, args interface{}) (Provider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	factory := registry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported ai provider: %s", name)
	}
	return factory(args)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("provider config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
