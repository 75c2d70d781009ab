package ai

import (
	"reflect"
	"testing"
)

func TestParseTagged(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Parsed
	}{
		{
			name: "complete pair",
			text: "<thinking>reasoning here</thinking><answer>final summary</answer>",
			want: Parsed{
				Thinking:   "reasoning here",
				Answer:     "final summary",
				Structured: true,
				Raw:        "<thinking>reasoning here</thinking><answer>final summary</answer>",
			},
		},
		{
			name: "open thinking still streaming",
			text: "<thinking>still going",
			want: Parsed{
				Thinking:        "still going",
				ThinkingPartial: true,
				Structured:      true,
				Raw:             "<thinking>still going",
			},
		},
		{
			name: "open answer still streaming",
			text: "<thinking>done</thinking><answer>partial ans",
			want: Parsed{
				Thinking:      "done",
				Answer:        "partial ans",
				AnswerPartial: true,
				Structured:    true,
				Raw:           "<thinking>done</thinking><answer>partial ans",
			},
		},
		{
			name: "no tags is an opaque blob",
			text: "Plain unstructured output",
			want: Parsed{Raw: "Plain unstructured output"},
		},
		{
			name: "empty input",
			text: "",
			want: Parsed{},
		},
		{
			name: "only first pair considered",
			text: "<answer>first</answer><answer>second</answer>",
			want: Parsed{
				Answer:     "first",
				Structured: true,
				Raw:        "<answer>first</answer><answer>second</answer>",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTagged(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTagged() = %+v, want %+v", got, tt.want)
			}
			// Pure function: a second call must agree with the first.
			if again := ParseTagged(tt.text); !reflect.DeepEqual(again, got) {
				t.Errorf("ParseTagged not idempotent: %+v vs %+v", again, got)
			}
		})
	}
}

func TestExtractAnswer(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"tagged", "<thinking>x</thinking><answer> Summary. </answer>", "Summary."},
		{"untagged passes through", "just a summary", "just a summary"},
		{"unclosed answer passes through", "<answer>still streaming", "<answer>still streaming"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractAnswer(tt.text); got != tt.want {
				t.Errorf("ExtractAnswer() = %q, want %q", got, tt.want)
			}
		})
	}
}
