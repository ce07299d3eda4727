package llm

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Collect drains s into one response, calling onChunk with every content fragment
// as it arrives. The stream is closed on return.
func Collect(s Stream, onChunk func(string)) (Response, error) {
	defer func() { _ = s.Close() }()
	start := time.Now()
	var out Response
	var content []byte
	for {
		c, err := s.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Response{}, fmt.Errorf("stream recv: %w", err)
		}
		if c.Content != "" {
			content = append(content, c.Content...)
			if onChunk != nil {
				onChunk(c.Content)
			}
		}
		if c.Model != "" {
			out.Model = c.Model
		}
		if c.PromptTokens != 0 {
			out.PromptTokens = c.PromptTokens
		}
		if c.CompletionTokens != 0 {
			out.CompletionTokens = c.CompletionTokens
		}
		if c.TotalTokens != 0 {
			out.TotalTokens = c.TotalTokens
		}
	}
	out.Content = string(content)
	out.TotalDuration = time.Since(start)
	return out, nil
}

type sliceStream struct {
	chunks []Chunk
	next   int
}

// NewSliceStream streams a fixed list of chunks.
func NewSliceStream(chunks ...Chunk) Stream {
	return &sliceStream{chunks: chunks}
}

func (s *sliceStream) Recv() (Chunk, error) {
	if s.next >= len(s.chunks) {
		return Chunk{}, io.EOF
	}
	c := s.chunks[s.next]
	s.next++
	return c, nil
}

func (s *sliceStream) Close() error { return nil }
