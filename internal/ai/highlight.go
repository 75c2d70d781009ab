package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// escapeRepairs are backslash sequences the validator model tends to emit
// inside otherwise-valid JSON (prescription symbols etc). Applied only after
// a first-pass parse failure.
var escapeRepairs = []struct{ old, new string }{
	{`\#`, `#`},
	{`\*`, `*`},
	{`\&`, `&`},
	{`\%`, `%`},
	{`\@`, `@`},
	{`\_`, `_`},
	{`\~`, `~`},
	{`\$`, `$`},
}

// ExtractRelevantText pulls the relevant_text value out of the validator's
// full response. The response is expected to be a JSON object with a
// relevant_text field; if the first parse fails, common bad escapes are
// repaired and the parse retried.
func ExtractRelevantText(fullResponse string) (json.RawMessage, error) {
	if raw, err := relevantTextField(fullResponse); err == nil {
		return raw, nil
	}
	repaired := fullResponse
	for _, r := range escapeRepairs {
		repaired = strings.ReplaceAll(repaired, r.old, r.new)
	}
	raw, err := relevantTextField(repaired)
	if err != nil {
		return nil, fmt.Errorf("parse validator response: %w", err)
	}
	return raw, nil
}

func relevantTextField(s string) (json.RawMessage, error) {
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return nil, err
	}
	raw, ok := parsed["relevant_text"]
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("no relevant_text field in validator response")
	}
	return raw, nil
}

// FlattenHighlights turns the validator's relevant_text value into one
// ordered list of highlight terms. Accepted shapes: an object mapping
// summary sentences to arrays of source substrings (values flattened in key
// order, which is preserved via token decoding), a bare array of strings,
// or a single string. Duplicates are kept; empty terms are not.
func FlattenHighlights(raw json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	switch trimmed[0] {
	case '{':
		return flattenObject(trimmed)
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return dropEmpty(list), nil
	default:
		var single string
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, err
		}
		return dropEmpty([]string{single}), nil
	}
}

// flattenObject walks the object with a token decoder so the key order of
// the wire payload survives; encoding/json map decoding would lose it.
func flattenObject(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}
	var terms []string
	for dec.More() {
		if _, err := dec.Token(); err != nil { // key
			return nil, err
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		var list []string
		if err := json.Unmarshal(value, &list); err == nil {
			terms = append(terms, list...)
			continue
		}
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			terms = append(terms, single)
		}
	}
	return dropEmpty(terms), nil
}

func dropEmpty(terms []string) []string {
	out := terms[:0]
	for _, t := range terms {
		if strings.TrimSpace(t) != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ApplyHighlights wraps occurrences of the highlight terms in the target
// text with mark tags. Matching runs per line: when any term contains the
// whole line as a case-insensitive substring the entire line is marked;
// otherwise every match of a case-insensitive alternation of the terms is
// wrapped individually. The character sequence of the input is never
// altered beyond the inserted markers. An empty term list returns the input
// unchanged.
func ApplyHighlights(text string, terms []string) string {
	if len(terms) == 0 || text == "" {
		return text
	}
	pattern := alternation(terms)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		if containedByAnyTerm(line, terms) {
			lines[i] = markOpen + line + markClose
			continue
		}
		if pattern != nil {
			lines[i] = pattern.ReplaceAllString(line, markOpen+"$0"+markClose)
		}
	}
	return strings.Join(lines, "\n")
}

func containedByAnyTerm(line string, terms []string) bool {
	lower := strings.ToLower(line)
	for _, term := range terms {
		if strings.Contains(strings.ToLower(term), lower) {
			return true
		}
	}
	return false
}

func alternation(terms []string) *regexp.Regexp {
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		if term == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(term))
	}
	if len(quoted) == 0 {
		return nil
	}
	pattern, err := regexp.Compile("(?i)" + strings.Join(quoted, "|"))
	if err != nil {
		return nil
	}
	return pattern
}
