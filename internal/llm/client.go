package llm

import (
	"context"
	"time"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

type Request struct {
	Model    string
	Messages []Message
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	TotalDuration    time.Duration
}

// Chunk is one increment of a streamed response. Metadata fields are set on
// whichever chunks the backend attaches them to, usually the last one.
type Chunk struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Stream yields chunks until Recv returns io.EOF.
type Stream interface {
	Recv() (Chunk, error)
	Close() error
}

type ModelInfo struct {
	Name       string
	Size       int64
	ModifiedAt time.Time
	Owner      string
}

type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
	GenerateStream(ctx context.Context, req Request) (Stream, error)
	ListModels(ctx context.Context) ([]ModelInfo, error)
}
