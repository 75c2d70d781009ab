package ai

import (
	"bytes"
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/privnurse/privnurse/internal/pkg/logutil"
)

// StreamChunk is one line of the model runner's newline-delimited JSON
// generation stream.
type StreamChunk struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

// Decoder incrementally decodes an NDJSON generation stream. Bytes are fed
// as they arrive; complete lines are parsed into StreamChunks and their
// Response fields appended to a cumulative text buffer. A line that does not
// yet parse is kept, in order, until more bytes arrive; only Finish gives up
// on it. Not safe for concurrent use.
type Decoder struct {
	pending []byte
	text    bytes.Buffer
	done    bool
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends raw stream bytes and returns the chunks completed by this
// read, in arrival order. A complete line that fails to parse blocks further
// consumption until the next Feed or Finish, so ordering is never violated.
func (d *Decoder) Feed(p []byte) []StreamChunk {
	d.pending = append(d.pending, p...)
	var out []StreamChunk
	for {
		idx := bytes.IndexByte(d.pending, '\n')
		if idx < 0 {
			return out
		}
		line := bytes.TrimSpace(d.pending[:idx])
		if len(line) == 0 {
			d.pending = d.pending[idx+1:]
			continue
		}
		chunk, ok := parseLine(line)
		if !ok {
			// Treat as not yet complete; retry once more bytes arrive.
			return out
		}
		d.pending = d.pending[idx+1:]
		d.accept(chunk)
		out = append(out, chunk)
	}
}

// Finish makes a final parse attempt on any retained data after the stream
// has ended. Lines that still fail to parse are logged and dropped.
func (d *Decoder) Finish(ctx context.Context) []StreamChunk {
	var out []StreamChunk
	for _, line := range bytes.Split(d.pending, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		chunk, ok := parseLine(line)
		if !ok {
			logutil.GetLogger(ctx).Warn("dropping malformed stream line",
				zap.Int("len", len(line)))
			continue
		}
		d.accept(chunk)
		out = append(out, chunk)
	}
	d.pending = nil
	return out
}

// Text returns the cumulative response text accumulated so far.
func (d *Decoder) Text() string {
	return d.text.String()
}

// Done reports whether a terminal chunk has been observed.
func (d *Decoder) Done() bool {
	return d.done
}

func (d *Decoder) accept(chunk StreamChunk) {
	d.text.WriteString(chunk.Response)
	if chunk.Done {
		d.done = true
	}
}

func parseLine(line []byte) (StreamChunk, bool) {
	var chunk StreamChunk
	if err := json.Unmarshal(line, &chunk); err != nil {
		return StreamChunk{}, false
	}
	return chunk, true
}
