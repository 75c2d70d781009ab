package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/privnurse/privnurse/internal/ai"
)

type stubResolver struct {
	names map[string]string
}

func (s *stubResolver) ActiveModelName(ctx context.Context, modelType string) (string, error) {
	name, ok := s.names[modelType]
	if !ok {
		return "", fmt.Errorf("no active %s model", modelType)
	}
	return name, nil
}

func testResolver() *stubResolver {
	return &stubResolver{names: map[string]string{
		"consultation_summary":    "summary-model",
		"consultation_validation": "validation-model",
	}}
}

// newModelRunner serves /api/generate for both agents: the summary model
// streams NDJSON chunk lines, the validation model answers with one
// terminal chunk whose response is validatorOutput.
func newModelRunner(t *testing.T, summaryLines []string, validatorOutput string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Model string `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		switch req.Model {
		case "summary-model":
			for _, line := range summaryLines {
				fmt.Fprintln(w, line)
			}
		case "validation-model":
			terminal := map[string]interface{}{"response": validatorOutput, "done": true}
			require.NoError(t, json.NewEncoder(w).Encode(terminal))
		default:
			http.Error(w, "unknown model", http.StatusBadRequest)
		}
	}))
}

func TestGenerateSummaryEndToEnd(t *testing.T) {
	summaryLines := []string{
		`{"response":"<thinking>","done":false}`,
		`{"response":"endocrine focus","done":false}`,
		`{"response":"</thinking><answer>Hyperglycemia","done":false}`,
		`{"response":" management needed</answer>","done":true}`,
	}
	validatorOutput := `{"relevant_text": {"Hyperglycemia management needed": ["hyperglycemia control"]}}`
	server := newModelRunner(t, summaryLines, validatorOutput)
	defer server.Close()

	svc := NewGenerationService(ai.NewOllamaProvider(server.URL, 5*time.Second), testResolver(), 0)

	var events []GenerationEvent
	err := svc.GenerateSummary(context.Background(), "Consult for hyperglycemia control post fracture surgery", func(ev GenerationEvent) error {
		events = append(events, ev)
		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, events)

	var lastStreaming *GenerationEvent
	for i := range events {
		if events[i].State == StateStreamingSummary {
			lastStreaming = &events[i]
		}
	}
	require.NotNil(t, lastStreaming)
	require.Equal(t, "endocrine focus", lastStreaming.Thinking)
	require.Equal(t, "Hyperglycemia management needed", lastStreaming.Answer)
	require.False(t, lastStreaming.ThinkingPartial)
	require.False(t, lastStreaming.AnswerPartial)

	final := events[len(events)-1]
	require.Equal(t, StateDone, final.State)
	require.Equal(t, "Hyperglycemia management needed", final.Summary)
	require.Equal(t, []string{"hyperglycemia control"}, final.Highlights)
	require.Contains(t, final.HighlightedText, "<mark>hyperglycemia control</mark>")
	require.Empty(t, final.Warning)

	// state order: streaming events first, then the three terminal states
	require.Equal(t, StateSummaryComplete, events[len(events)-3].State)
	require.Equal(t, StateValidating, events[len(events)-2].State)
}

func TestGenerateSummaryPartialThinkingMidStream(t *testing.T) {
	summaryLines := []string{
		`{"response":"<thinking>still going","done":false}`,
		`{"response":"</thinking><answer>done</answer>","done":true}`,
	}
	server := newModelRunner(t, summaryLines, `{"relevant_text": []}`)
	defer server.Close()

	svc := NewGenerationService(ai.NewOllamaProvider(server.URL, 5*time.Second), testResolver(), 0)

	var events []GenerationEvent
	err := svc.GenerateSummary(context.Background(), "source text", func(ev GenerationEvent) error {
		events = append(events, ev)
		return nil
	})
	require.NoError(t, err)

	first := events[0]
	require.Equal(t, StateStreamingSummary, first.State)
	require.Equal(t, "still going", first.Thinking)
	require.True(t, first.ThinkingPartial)
	require.Empty(t, first.Answer)
}

func TestGenerateSummaryDegradesOnValidatorFailure(t *testing.T) {
	summaryLines := []string{
		`{"response":"<answer>Summary text</answer>","done":true}`,
	}
	server := newModelRunner(t, summaryLines, `this is not json at all`)
	defer server.Close()

	svc := NewGenerationService(ai.NewOllamaProvider(server.URL, 5*time.Second), testResolver(), 0)

	var events []GenerationEvent
	err := svc.GenerateSummary(context.Background(), "source text", func(ev GenerationEvent) error {
		events = append(events, ev)
		return nil
	})
	require.NoError(t, err)

	final := events[len(events)-1]
	require.Equal(t, StateDone, final.State)
	require.Equal(t, "Summary text", final.Summary)
	require.Empty(t, final.Highlights)
	require.NotEmpty(t, final.Warning)
	require.Equal(t, "source text", final.HighlightedText)
}

func TestGenerateSummaryNoValidationModelDegrades(t *testing.T) {
	summaryLines := []string{
		`{"response":"<answer>ok</answer>","done":true}`,
	}
	server := newModelRunner(t, summaryLines, "")
	defer server.Close()

	resolver := &stubResolver{names: map[string]string{"consultation_summary": "summary-model"}}
	svc := NewGenerationService(ai.NewOllamaProvider(server.URL, 5*time.Second), resolver, 0)

	var final GenerationEvent
	err := svc.GenerateSummary(context.Background(), "text", func(ev GenerationEvent) error {
		final = ev
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, StateDone, final.State)
	require.NotEmpty(t, final.Warning)
	require.Empty(t, final.Highlights)
}

func TestGenerateSummaryUpstreamFailureIsTerminal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewGenerationService(ai.NewOllamaProvider(server.URL, 5*time.Second), testResolver(), 0)

	var events []GenerationEvent
	err := svc.GenerateSummary(context.Background(), "text", func(ev GenerationEvent) error {
		events = append(events, ev)
		return nil
	})
	require.Error(t, err)
	require.NotEmpty(t, events)
	require.Equal(t, StateError, events[len(events)-1].State)
}

func TestGenerateSummaryRejectsEmptyContent(t *testing.T) {
	svc := NewGenerationService(ai.NewOllamaProvider("http://127.0.0.1:1", time.Second), testResolver(), 0)
	err := svc.GenerateSummary(context.Background(), "   ", func(GenerationEvent) error { return nil })
	require.Error(t, err)
}
