package ai

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestExtractRelevantText(t *testing.T) {
	raw, err := ExtractRelevantText(`{"relevant_text": {"s1": ["a", "b"]}}`)
	if err != nil {
		t.Fatalf("ExtractRelevantText: %v", err)
	}
	if !strings.Contains(string(raw), `"a"`) {
		t.Errorf("unexpected raw value: %s", raw)
	}
}

func TestExtractRelevantTextRepairsEscapes(t *testing.T) {
	// Models tend to escape prescription symbols, which breaks strict JSON.
	input := `{"relevant_text": ["Rx \#3 Metformin 500mg"]}`
	raw, err := ExtractRelevantText(input)
	if err != nil {
		t.Fatalf("ExtractRelevantText: %v", err)
	}
	terms, err := FlattenHighlights(raw)
	if err != nil {
		t.Fatalf("FlattenHighlights: %v", err)
	}
	if len(terms) != 1 || terms[0] != "Rx #3 Metformin 500mg" {
		t.Errorf("terms = %v", terms)
	}
}

func TestExtractRelevantTextMissingField(t *testing.T) {
	if _, err := ExtractRelevantText(`{"other": 1}`); err == nil {
		t.Error("expected error for missing relevant_text")
	}
	if _, err := ExtractRelevantText(`not json at all`); err == nil {
		t.Error("expected error for non-JSON input")
	}
}

func TestFlattenHighlights(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "object values flattened in key order",
			raw:  `{"sentence one": ["alpha", "beta"], "sentence two": ["gamma"]}`,
			want: []string{"alpha", "beta", "gamma"},
		},
		{
			name: "bare array",
			raw:  `["x", "y"]`,
			want: []string{"x", "y"},
		},
		{
			name: "single string",
			raw:  `"lone"`,
			want: []string{"lone"},
		},
		{
			name: "duplicates kept, empties dropped",
			raw:  `{"a": ["dup", "", "dup"]}`,
			want: []string{"dup", "dup"},
		},
		{
			name: "empty object",
			raw:  `{}`,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FlattenHighlights(json.RawMessage(tt.raw))
			if err != nil {
				t.Fatalf("FlattenHighlights: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FlattenHighlights() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyHighlights(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		terms []string
		want  string
	}{
		{
			name:  "substring matches wrapped",
			text:  "Patient has swelling in left neck",
			terms: []string{"swelling", "left neck"},
			want:  "Patient has <mark>swelling</mark> in <mark>left neck</mark>",
		},
		{
			name:  "no terms passes through byte for byte",
			text:  "Patient has swelling in left neck",
			terms: nil,
			want:  "Patient has swelling in left neck",
		},
		{
			name:  "case insensitive",
			text:  "HYPERGLYCEMIA noted",
			terms: []string{"hyperglycemia"},
			want:  "<mark>HYPERGLYCEMIA</mark> noted",
		},
		{
			name:  "line contained by a term marks whole line",
			text:  "left neck",
			terms: []string{"swelling in Left Neck area"},
			want:  "<mark>left neck</mark>",
		},
		{
			name:  "regex metacharacters escaped",
			text:  "dose 2.5 mg (oral)",
			terms: []string{"2.5 mg (oral)"},
			want:  "dose <mark>2.5 mg (oral)</mark>",
		},
		{
			name:  "newlines preserved",
			text:  "line one fever\nline two chills",
			terms: []string{"fever", "chills"},
			want:  "line one <mark>fever</mark>\nline two <mark>chills</mark>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyHighlights(tt.text, tt.terms); got != tt.want {
				t.Errorf("ApplyHighlights() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Aside from the inserted markers, the original character sequence must
// survive highlighting unchanged.
func TestApplyHighlightsPreservesText(t *testing.T) {
	text := "Consult for hyperglycemia control post fracture surgery"
	out := ApplyHighlights(text, []string{"hyperglycemia", "surgery"})
	stripped := strings.ReplaceAll(out, "<mark>", "")
	stripped = strings.ReplaceAll(stripped, "</mark>", "")
	if stripped != text {
		t.Errorf("text altered: %q", stripped)
	}
}
