// Package assistant orchestrates a chat session against an LLM backend: context
// assembly, history bookkeeping, response artifacts and session statistics.
package assistant

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"chatbots/internal/history"
	"chatbots/internal/llm"
	"chatbots/internal/storage"
	"chatbots/internal/transcript"
)

type State int

const (
	StateIdle State = iota
	StateConnecting
	StateReady
	StateBuffering
	StateStreaming
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateBuffering:
		return "buffering"
	case StateStreaming:
		return "streaming"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

const DefaultContextTurns = 5

// Options configures a session. ContextTurns bounds how many history turns precede
// a new prompt. OnChunk receives streamed fragments for requests that set no
// handler of their own. Now defaults to time.Now.
type Options struct {
	Model        string
	ContextTurns int
	Stream       bool
	OutputDir    string
	OnChunk      func(string)
	Now          func() time.Time
}

// Suite is one session. It is safe for concurrent use so that a scheduled export
// can run while a prompt is in flight.
type Suite struct {
	client    llm.Client
	history   *history.Manager
	journal   storage.Recorder
	sessionID string
	outputDir string
	turns     int
	onChunk   func(string)
	now       func() time.Time

	mu           sync.Mutex
	state        State
	model        string
	stream       bool
	started      time.Time
	interactions int
	totalTokens  int
	lastResponse time.Duration
}

// New builds an idle session. journal may be nil.
func New(client llm.Client, hist *history.Manager, journal storage.Recorder, opts Options) *Suite {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	turns := opts.ContextTurns
	if turns <= 0 {
		turns = DefaultContextTurns
	}
	return &Suite{
		client:    client,
		history:   hist,
		journal:   journal,
		sessionID: uuid.NewString(),
		outputDir: opts.OutputDir,
		turns:     turns,
		onChunk:   opts.OnChunk,
		now:       now,
		state:     StateIdle,
		model:     opts.Model,
		stream:    opts.Stream,
		started:   now(),
	}
}

// Connect checks the backend by listing its models. The session is Ready on
// success; an error wraps ErrBackendUnavailable.
func (s *Suite) Connect(ctx context.Context) ([]llm.ModelInfo, error) {
	s.setState(StateConnecting)
	models, err := s.client.ListModels(ctx)
	if err != nil {
		s.setState(StateIdle)
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	s.setState(StateReady)
	return models, nil
}

func (s *Suite) ListModels(ctx context.Context) ([]llm.ModelInfo, error) {
	models, err := s.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendCall, err)
	}
	return models, nil
}

func (s *Suite) Close() { s.setState(StateClosed) }

func (s *Suite) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Suite) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Suite) SessionID() string { return s.sessionID }

func (s *Suite) History() *history.Manager { return s.history }

func (s *Suite) Model() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

func (s *Suite) SetModel(name string) {
	s.mu.Lock()
	s.model = name
	s.mu.Unlock()
}

func (s *Suite) Streaming() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream
}

// ToggleStream flips the default response mode and returns the new one.
func (s *Suite) ToggleStream() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stream = !s.stream
	return s.stream
}

// ClearHistory empties the conversation and persists the empty state.
func (s *Suite) ClearHistory() error {
	s.history.Reset()
	if err := s.history.Save(); err != nil {
		return fmt.Errorf("%w: save history: %w", ErrPersistence, err)
	}
	return nil
}

// ExportMarkdown writes the full conversation to path, or to a time-stamped file in
// the output directory when path is empty, and returns the path written.
func (s *Suite) ExportMarkdown(path string) (string, error) {
	at := s.now()
	if path == "" {
		path = filepath.Join(s.outputDir, "conversation_"+at.Format(transcript.FileStamp)+".md")
	}
	if err := transcript.Export(path, s.Model(), s.history.All(), at); err != nil {
		return "", fmt.Errorf("%w: export: %w", ErrPersistence, err)
	}
	return path, nil
}

func (s *Suite) record(ev storage.Event) error {
	if s.journal == nil {
		return nil
	}
	if err := s.journal.AppendInteraction(ev); err != nil {
		log.Printf("journal append failed: %v", err)
		return fmt.Errorf("%w: journal: %w", ErrPersistence, err)
	}
	return nil
}
