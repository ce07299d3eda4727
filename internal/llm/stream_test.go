package llm

import (
	"errors"
	"testing"
)

type failingStream struct{ sent bool }

func (f *failingStream) Recv() (Chunk, error) {
	if !f.sent {
		f.sent = true
		return Chunk{Content: "partial"}, nil
	}
	return Chunk{}, errors.New("connection reset")
}

func (f *failingStream) Close() error { return nil }

func TestCollectConcatenatesAndKeepsMetadata(t *testing.T) {
	s := NewSliceStream(
		Chunk{Content: "a", Model: "m1"},
		Chunk{Content: "b"},
		Chunk{Model: "m2", CompletionTokens: 9, TotalTokens: 12},
	)
	var n int
	resp, err := Collect(s, func(string) { n++ })
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if resp.Content != "ab" || resp.Model != "m2" || resp.CompletionTokens != 9 || resp.TotalTokens != 12 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if n != 2 {
		t.Fatalf("want 2 content callbacks, got %d", n)
	}
}

func TestCollectPropagatesErrors(t *testing.T) {
	if _, err := Collect(&failingStream{}, nil); err == nil {
		t.Fatalf("expected error")
	}
}
