package assistant

import (
	"context"
	"fmt"
	"log"
	"time"

	"chatbots/internal/llm"
	"chatbots/internal/storage"
	"chatbots/internal/transcript"
)

// SendOptions adjusts one request. A nil Stream uses the session default. OnChunk
// receives streamed fragments as they arrive and is ignored for buffered requests;
// nil falls back to the session handler.
type SendOptions struct {
	SystemPrompt string
	Stream       *bool
	OnChunk      func(string)
}

// Result is a completed response. Warnings carries non-fatal ErrPersistence
// failures from saving history, the artifact or the journal.
type Result struct {
	Content      string
	Model        string
	Duration     time.Duration
	Tokens       int
	Streamed     bool
	ArtifactPath string
	Warnings     []error
}

// Send asks the backend to answer prompt with the system prompt and the most recent
// history turns as context. The user turn is always recorded; the assistant turn
// only on success, after which history is persisted and a response artifact is
// written. Backend failures wrap ErrBackendCall.
func (s *Suite) Send(ctx context.Context, prompt string, opts SendOptions) (Result, error) {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return Result{}, ErrClosed
	}
	model := s.model
	stream := s.stream
	if opts.Stream != nil {
		stream = *opts.Stream
	}
	s.interactions++
	if stream {
		s.state = StateStreaming
	} else {
		s.state = StateBuffering
	}
	s.mu.Unlock()

	start := s.now()
	var messages []llm.Message
	if opts.SystemPrompt != "" {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: opts.SystemPrompt})
	}
	messages = append(messages, s.history.Recent(s.turns)...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})
	s.history.AppendUser(prompt)

	onChunk := opts.OnChunk
	if onChunk == nil {
		onChunk = s.onChunk
	}
	resp, err := s.generate(ctx, llm.Request{Model: model, Messages: messages}, stream, onChunk)
	elapsed := s.now().Sub(start)
	if err != nil {
		s.finish(elapsed, 0, false)
		log.Printf("generate with %s failed: %v", model, err)
		_ = s.record(storage.Event{
			Timestamp: start,
			SessionID: s.sessionID,
			Model:     model,
			Streamed:  stream,
			Prompt:    prompt,
			LatencyMs: elapsed.Milliseconds(),
			Error:     err.Error(),
		})
		return Result{}, fmt.Errorf("%w: %w", ErrBackendCall, err)
	}
	s.finish(elapsed, resp.CompletionTokens, true)

	res := Result{
		Content:  resp.Content,
		Model:    resp.Model,
		Duration: resp.TotalDuration,
		Tokens:   resp.CompletionTokens,
		Streamed: stream,
	}
	if res.Model == "" {
		res.Model = model
	}
	if res.Duration <= 0 {
		res.Duration = elapsed
	}

	s.history.AppendAssistant(resp.Content)
	if err := s.history.Save(); err != nil {
		log.Printf("could not save conversation history: %v", err)
		res.Warnings = append(res.Warnings, fmt.Errorf("%w: save history: %w", ErrPersistence, err))
	}

	meta := transcript.ResponseMeta{Model: res.Model, ResponseTime: elapsed, Tokens: res.Tokens, Streamed: stream}
	if stream {
		meta.ResponseTime = res.Duration
	}
	path, err := transcript.WriteResponse(s.outputDir, s.now(), prompt, resp.Content, meta)
	if err != nil {
		log.Printf("could not save response to file: %v", err)
		res.Warnings = append(res.Warnings, fmt.Errorf("%w: response artifact: %w", ErrPersistence, err))
	} else {
		res.ArtifactPath = path
	}

	if err := s.record(storage.Event{
		Timestamp:  start,
		SessionID:  s.sessionID,
		Model:      res.Model,
		Streamed:   stream,
		Prompt:     prompt,
		Response:   resp.Content,
		TokenCount: res.Tokens,
		LatencyMs:  elapsed.Milliseconds(),
	}); err != nil {
		res.Warnings = append(res.Warnings, err)
	}
	return res, nil
}

func (s *Suite) generate(ctx context.Context, req llm.Request, stream bool, onChunk func(string)) (llm.Response, error) {
	if !stream {
		return s.client.Generate(ctx, req)
	}
	st, err := s.client.GenerateStream(ctx, req)
	if err != nil {
		return llm.Response{}, err
	}
	return llm.Collect(st, onChunk)
}

// finish returns the session to Ready and folds one call into the counters.
func (s *Suite) finish(elapsed time.Duration, tokens int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateClosed {
		s.state = StateReady
	}
	if ok {
		s.lastResponse = elapsed
		s.totalTokens += tokens
	}
}
