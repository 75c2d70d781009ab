package ai

import "strings"

const (
	thinkingOpen  = "<thinking>"
	thinkingClose = "</thinking>"
	answerOpen    = "<answer>"
	answerClose   = "</answer>"
)

// Parsed is the structured view of a (possibly still streaming) model
// response. When Structured is false the text carried no tags and Raw holds
// it verbatim for direct display.
type Parsed struct {
	Thinking        string
	Answer          string
	ThinkingPartial bool
	AnswerPartial   bool
	Structured      bool
	Raw             string
}

// ParseTagged extracts the first <thinking> and <answer> segments from the
// accumulated response text. It is a pure function of its input and must be
// re-run on the full buffer after every chunk, since tag boundaries can span
// chunks. Repeated tag pairs are not supported; only the first of each tag
// is considered.
func ParseTagged(text string) Parsed {
	if !strings.Contains(text, thinkingOpen) && !strings.Contains(text, answerOpen) {
		return Parsed{Raw: text}
	}
	p := Parsed{Structured: true, Raw: text}
	p.Thinking, p.ThinkingPartial = extractTag(text, thinkingOpen, thinkingClose)
	p.Answer, p.AnswerPartial = extractTag(text, answerOpen, answerClose)
	return p
}

func extractTag(text, open, close string) (string, bool) {
	start := strings.Index(text, open)
	if start < 0 {
		return "", false
	}
	inner := text[start+len(open):]
	end := strings.Index(inner, close)
	if end < 0 {
		// Open tag without a close: stream still in flight.
		return strings.TrimSpace(inner), true
	}
	return strings.TrimSpace(inner[:end]), false
}

// ExtractAnswer returns the interior of the first <answer> pair when
// present, else the input unchanged. The validator is always fed the bare
// answer text, never the tag markup.
func ExtractAnswer(text string) string {
	parsed := ParseTagged(text)
	if parsed.Structured && !parsed.AnswerPartial && parsed.Answer != "" {
		return parsed.Answer
	}
	return text
}
