package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapRelevantText(t *testing.T) {
	wrapped, err := wrapRelevantText(json.RawMessage(`["swelling","left neck"]`))
	require.NoError(t, err)
	require.JSONEq(t, `{"relevant_highlights":["swelling","left neck"]}`, string(wrapped))
}

func TestWrapRelevantTextEmptyBecomesNull(t *testing.T) {
	wrapped, err := wrapRelevantText(nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"relevant_highlights":null}`, string(wrapped))
}

func TestWrapRelevantTextRejectsInvalidJSON(t *testing.T) {
	_, err := wrapRelevantText(json.RawMessage(`{broken`))
	require.Error(t, err)
}
