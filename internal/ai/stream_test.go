package ai

import (
	"context"
	"testing"
)

func TestDecoderAccumulatesChunks(t *testing.T) {
	d := NewDecoder()
	chunks := d.Feed([]byte(`{"model":"m","response":"Hello ","done":false}` + "\n"))
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	chunks = d.Feed([]byte(`{"model":"m","response":"world","done":true}` + "\n"))
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if got := d.Text(); got != "Hello world" {
		t.Errorf("Text() = %q, want %q", got, "Hello world")
	}
	if !d.Done() {
		t.Error("expected Done after terminal chunk")
	}
}

func TestDecoderSplitMidLine(t *testing.T) {
	d := NewDecoder()
	if got := d.Feed([]byte(`{"model":"m","resp`)); len(got) != 0 {
		t.Fatalf("partial line yielded %d chunks", len(got))
	}
	got := d.Feed([]byte(`onse":"abc","done":false}` + "\n"))
	if len(got) != 1 || got[0].Response != "abc" {
		t.Fatalf("reassembled line mismatch: %+v", got)
	}
}

// Decoding chunk by chunk must yield the same final text as parsing the
// whole payload in one shot, regardless of where the byte boundaries fall.
func TestDecoderChunkingInvariant(t *testing.T) {
	payload := `{"response":"<thinking>","done":false}` + "\n" +
		`{"response":"endocrine focus","done":false}` + "\n" +
		`{"response":"</thinking><answer>Hyperglycemia","done":false}` + "\n" +
		`{"response":" management needed</answer>","done":true}` + "\n"

	oneShot := NewDecoder()
	oneShot.Feed([]byte(payload))
	want := oneShot.Text()

	for _, size := range []int{1, 3, 7, 16, 64} {
		d := NewDecoder()
		for i := 0; i < len(payload); i += size {
			end := i + size
			if end > len(payload) {
				end = len(payload)
			}
			d.Feed([]byte(payload[i:end]))
		}
		d.Finish(context.Background())
		if got := d.Text(); got != want {
			t.Errorf("chunk size %d: got %q, want %q", size, got, want)
		}
	}
}

func TestDecoderRetainsUnparsedLineUntilFinish(t *testing.T) {
	d := NewDecoder()
	// A complete but (so far) unparseable line is not discarded.
	if got := d.Feed([]byte("garbage\n")); len(got) != 0 {
		t.Fatalf("garbage line yielded %d chunks", len(got))
	}
	// Later valid lines stay queued behind it until Finish.
	if got := d.Feed([]byte(`{"response":"ok","done":true}` + "\n")); len(got) != 0 {
		t.Fatalf("queued line yielded %d chunks before Finish", len(got))
	}
	chunks := d.Finish(context.Background())
	if len(chunks) != 1 || chunks[0].Response != "ok" {
		t.Fatalf("Finish recovered %+v", chunks)
	}
	if got := d.Text(); got != "ok" {
		t.Errorf("Text() = %q after dropping malformed line", got)
	}
}

func TestDecoderFinishDropsMalformedTrailer(t *testing.T) {
	d := NewDecoder()
	d.Feed([]byte(`{"response":"a","done":false}` + "\n" + `{"resp`))
	chunks := d.Finish(context.Background())
	if len(chunks) != 0 {
		t.Fatalf("expected trailing fragment dropped, got %+v", chunks)
	}
	if got := d.Text(); got != "a" {
		t.Errorf("Text() = %q, want %q", got, "a")
	}
}
