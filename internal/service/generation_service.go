package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/privnurse/privnurse/internal/ai"
	"github.com/privnurse/privnurse/internal/model"
	appErr "github.com/privnurse/privnurse/internal/pkg/errors"
	"github.com/privnurse/privnurse/internal/pkg/logutil"
)

// Generation states, in request order. Error is terminal and reachable from
// any non-idle state.
const (
	StateIdle             = "idle"
	StateStreamingSummary = "streaming_summary"
	StateSummaryComplete  = "summary_complete"
	StateValidating       = "validating"
	StateDone             = "done"
	StateError            = "error"
)

// GenerationEvent is one NDJSON line streamed to the caller. Fields are
// populated per state: thinking/answer during summary streaming, highlights
// and relevant_text at done.
type GenerationEvent struct {
	State           string          `json:"state"`
	Thinking        string          `json:"thinking,omitempty"`
	Answer          string          `json:"answer,omitempty"`
	ThinkingPartial bool            `json:"thinking_partial,omitempty"`
	AnswerPartial   bool            `json:"answer_partial,omitempty"`
	Raw             string          `json:"raw,omitempty"`
	Summary         string          `json:"summary,omitempty"`
	Highlights      []string        `json:"highlights,omitempty"`
	RelevantText    json.RawMessage `json:"relevant_text,omitempty"`
	HighlightedText string          `json:"highlighted_text,omitempty"`
	Warning         string          `json:"warning,omitempty"`
	Error           string          `json:"error,omitempty"`
}

// EmitFunc delivers one event to the caller. Returning an error aborts the
// generation (client went away).
type EmitFunc func(GenerationEvent) error

// ModelResolver maps a model type to the currently active model name.
type ModelResolver interface {
	ActiveModelName(ctx context.Context, modelType string) (string, error)
}

// GenerationService runs the two-agent summary pipeline: stream the
// summarizer, re-parse the tag structure after every chunk, then ask the
// validation model which source substrings justify the frozen summary. One
// instance serves all requests; all per-request state lives on the stack.
type GenerationService struct {
	provider      ai.Provider
	models        ModelResolver
	maxInputChars int
}

func NewGenerationService(provider ai.Provider, models ModelResolver, maxInputChars int) *GenerationService {
	return &GenerationService{
		provider:      provider,
		models:        models,
		maxInputChars: maxInputChars,
	}
}

// GenerateSummary drives one generation request to completion, emitting an
// event after every decoded chunk and a final done (or error) event. The
// summary text already streamed is never discarded: validator failure
// degrades to empty highlights with a warning, and transport failure leaves
// the partial events the caller already received intact.
func (s *GenerationService) GenerateSummary(ctx context.Context, content string, emit EmitFunc) error {
	logger := logutil.GetLogger(ctx).With(zap.String("op", "gen_summary"))
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is required", appErr.ErrInvalid)
	}
	if s.maxInputChars > 0 && len(content) > s.maxInputChars {
		return fmt.Errorf("%w: content exceeds %d chars", appErr.ErrInvalid, s.maxInputChars)
	}

	summaryModel, err := s.models.ActiveModelName(ctx, model.ModelTypeConsultationSummary)
	if err != nil {
		return err
	}

	var buf strings.Builder
	streamErr := s.provider.GenerateStream(ctx, summaryModel, content, func(chunk ai.StreamChunk) error {
		buf.WriteString(chunk.Response)
		parsed := ai.ParseTagged(buf.String())
		ev := GenerationEvent{
			State:           StateStreamingSummary,
			Thinking:        parsed.Thinking,
			Answer:          parsed.Answer,
			ThinkingPartial: parsed.ThinkingPartial,
			AnswerPartial:   parsed.AnswerPartial,
		}
		if !parsed.Structured {
			ev.Raw = parsed.Raw
		}
		return emit(ev)
	})
	if streamErr != nil {
		logger.Error("summary stream failed", zap.Error(streamErr))
		_ = emit(GenerationEvent{State: StateError, Error: streamErr.Error()})
		return fmt.Errorf("%w: %v", appErr.ErrUpstream, streamErr)
	}

	full := buf.String()
	parsed := ai.ParseTagged(full)
	summary := parsed.Answer
	if !parsed.Structured {
		summary = parsed.Raw
	}
	if err := emit(GenerationEvent{State: StateSummaryComplete, Summary: summary}); err != nil {
		return err
	}
	if err := emit(GenerationEvent{State: StateValidating}); err != nil {
		return err
	}

	relevant, terms, warn := s.validate(ctx, content, full)
	done := GenerationEvent{
		State:           StateDone,
		Summary:         summary,
		Highlights:      terms,
		RelevantText:    relevant,
		HighlightedText: ai.ApplyHighlights(content, terms),
		Warning:         warn,
	}
	if warn != "" {
		logger.Warn("validation degraded", zap.String("warning", warn))
	}
	return emit(done)
}

// validate runs the second agent. Failures never fail the request; they
// degrade to an empty highlight set plus a warning string.
func (s *GenerationService) validate(ctx context.Context, original, summary string) (json.RawMessage, []string, string) {
	validationModel, err := s.models.ActiveModelName(ctx, model.ModelTypeConsultationValidation)
	if err != nil {
		return nil, nil, fmt.Sprintf("no validation model: %v", err)
	}
	prompt := ai.BuildValidationPrompt(original, summary)
	resp, err := s.provider.Generate(ctx, validationModel, prompt)
	if err != nil {
		return nil, nil, fmt.Sprintf("validation call failed: %v", err)
	}
	relevant, err := ai.ExtractRelevantText(resp)
	if err != nil {
		return nil, nil, fmt.Sprintf("validation output unusable: %v", err)
	}
	terms, err := ai.FlattenHighlights(relevant)
	if err != nil {
		return relevant, nil, fmt.Sprintf("highlight flatten failed: %v", err)
	}
	return relevant, terms, ""
}

// Validate exposes the second agent directly for the gen-validation
// endpoint; unlike the orchestrated path, failure here is an error.
func (s *GenerationService) Validate(ctx context.Context, original, summary string) (json.RawMessage, error) {
	if strings.TrimSpace(original) == "" || strings.TrimSpace(summary) == "" {
		return nil, fmt.Errorf("%w: original and summary are required", appErr.ErrInvalid)
	}
	validationModel, err := s.models.ActiveModelName(ctx, model.ModelTypeConsultationValidation)
	if err != nil {
		return nil, err
	}
	prompt := ai.BuildValidationPrompt(original, summary)
	resp, err := s.provider.Generate(ctx, validationModel, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrUpstream, err)
	}
	relevant, err := ai.ExtractRelevantText(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrUpstream, err)
	}
	return relevant, nil
}

// ListModels proxies the provider's model listing.
func (s *GenerationService) ListModels(ctx context.Context) ([]ai.ModelInfo, error) {
	return s.provider.ListModels(ctx)
}
