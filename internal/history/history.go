package history

import (
	"encoding/json"
	"sync"
	"time"

	"chatbots/internal/llm"
)

// Turn is one role-tagged message of a conversation.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// localLayout is an ISO timestamp without zone, as written by older history files.
const localLayout = "2006-01-02T15:04:05.999999999"

func (t *Turn) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role      string `json:"role"`
		Content   string `json:"content"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Role, t.Content, t.Timestamp = raw.Role, raw.Content, time.Time{}
	if raw.Timestamp == "" {
		return nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw.Timestamp); err == nil {
		t.Timestamp = ts
		return nil
	}
	if ts, err := time.ParseInLocation(localLayout, raw.Timestamp, time.Local); err == nil {
		t.Timestamp = ts
	}
	return nil
}

// Store persists the full ordered list of turns.
type Store interface {
	Load() ([]Turn, error)
	Save(turns []Turn) error
}

// Manager holds one conversation. Turns are append-only until Reset; consecutive
// turns of the same role are allowed.
type Manager struct {
	mu    sync.RWMutex
	turns []Turn
	store Store
	now   func() time.Time
}

// NewManager returns an empty conversation; store may be nil for an in-memory one.
func NewManager(store Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// Load replaces the in-memory turns with the stored ones. On error the
// conversation is left empty.
func (m *Manager) Load() error {
	if m.store == nil {
		return nil
	}
	turns, err := m.store.Load()
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.turns = nil
		return err
	}
	m.turns = turns
	return nil
}

// Save writes every turn to the store.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	return m.store.Save(m.All())
}

func (m *Manager) AppendUser(content string) Turn {
	return m.append(llm.RoleUser, content)
}

func (m *Manager) AppendAssistant(content string) Turn {
	return m.append(llm.RoleAssistant, content)
}

func (m *Manager) append(role, content string) Turn {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := Turn{Role: role, Content: content, Timestamp: m.now()}
	m.turns = append(m.turns, t)
	return t
}

// Recent returns the last n turns as chat messages.
func (m *Manager) Recent(n int) []llm.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n <= 0 {
		return nil
	}
	start := len(m.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]llm.Message, 0, len(m.turns)-start)
	for _, t := range m.turns[start:] {
		out = append(out, llm.Message{Role: t.Role, Content: t.Content})
	}
	return out
}

// All returns a copy of every turn in order.
func (m *Manager) All() []Turn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.turns)
}

func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = nil
}
