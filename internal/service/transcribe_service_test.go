package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripUnwantedPrefix(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Okay, here's the transcription of the audio: Record time 11 pm", "Record time 11 pm"},
		{"Transcription: patient resting comfortably", "patient resting comfortably"},
		{"transcription: lowercase still matches", "lowercase still matches"},
		{"The audio says: BP 120 over 80", "BP 120 over 80"},
		{"Record time 11 pm", "Record time 11 pm"},
		{"  padded text  ", "padded text"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, stripUnwantedPrefix(tc.in), "input %q", tc.in)
	}
}

func TestStripUnwantedPrefixOnlyFirstMatch(t *testing.T) {
	// "Okay," matches before the longer variants are irrelevant; only one
	// prefix is removed per pass.
	got := stripUnwantedPrefix("Okay, Sure, both lead-ins")
	require.Equal(t, "Sure, both lead-ins", got)
}
