package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/privnurse/privnurse/internal/pkg/logutil"
)

type ollamaConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type ollamaProvider struct {
	baseURL string
	client  *http.Client
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaTagsResponse struct {
	Models []ModelInfo `json:"models"`
}

func init() {
	Register("ollama", createOllamaProvider)
}

func createOllamaProvider(args interface{}) (Provider, error) {
	cfg := &ollamaConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("ollama base_url is required")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &ollamaProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// NewOllamaProvider builds the provider directly, bypassing the registry.
// Used where the runner address is already known (tests, the tags proxy).
func NewOllamaProvider(baseURL string, timeout time.Duration) Provider {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &ollamaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *ollamaProvider) Name() string {
	return "ollama"
}

func (p *ollamaProvider) Generate(ctx context.Context, model string, prompt string) (string, error) {
	// The runner streams even for "complete" generations; accumulating the
	// chunk stream gives the same text as a stream=false request and keeps
	// one decode path.
	resp, err := p.post(ctx, ollamaRequest{Model: model, Prompt: prompt, Stream: true})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	decoder := NewDecoder()
	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			decoder.Feed(buf[:n])
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", fmt.Errorf("%w: %v", ErrStreamInterrupt, readErr)
		}
	}
	decoder.Finish(ctx)
	return decoder.Text(), nil
}

func (p *ollamaProvider) GenerateStream(ctx context.Context, model string, prompt string, fn func(StreamChunk) error) error {
	resp, err := p.post(ctx, ollamaRequest{Model: model, Prompt: prompt, Stream: true})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	logutil.GetLogger(ctx).Debug("generation stream opened",
		zap.String("model", model), zap.Int("prompt_len", len(prompt)))

	decoder := NewDecoder()
	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			for _, chunk := range decoder.Feed(buf[:n]) {
				if err := fn(chunk); err != nil {
					return err
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("%w: %v", ErrStreamInterrupt, readErr)
		}
		if decoder.Done() {
			break
		}
	}
	for _, chunk := range decoder.Finish(ctx) {
		if err := fn(chunk); err != nil {
			return err
		}
	}
	return nil
}

func (p *ollamaProvider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tags status %s", ErrRequestFailed, resp.Status)
	}
	var out ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Models, nil
}

func (p *ollamaProvider) post(ctx context.Context, body ollamaRequest) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		resp.Body.Close()
		return nil, fmt.Errorf("%w: generate status %s: %s", ErrRequestFailed, resp.Status, strings.TrimSpace(string(detail)))
	}
	return resp, nil
}
