// Package vocab holds the static response and trigger tables of the keyword chatbot.
package vocab

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultTag is the reserved fallback entry every table must contain.
	DefaultTag = "default"
	// FarewellTag answers the farewell word that ends a console session.
	FarewellTag = "bye"
	// Farewell is the word that ends a console session.
	Farewell = "bye"
)

//go:embed java.yaml
var javaVocabulary []byte

// KeywordTrigger is a single-token trigger, matched exactly or approximately.
type KeywordTrigger struct {
	Text  string `yaml:"text"`
	Fuzzy bool   `yaml:"fuzzy,omitempty"`
}

// Entry binds a tag to its canned response and its surface-form triggers.
type Entry struct {
	Tag      string          `yaml:"tag"`
	Response string          `yaml:"response"`
	Keyword  *KeywordTrigger `yaml:"keyword,omitempty"`
	Phrases  []string        `yaml:"phrases,omitempty"`
}

type document struct {
	Entries []Entry `yaml:"entries"`
}

// Table is immutable after construction.
type Table struct {
	entries []Entry
	index   map[string]int
}

// Java returns the embedded Java keyword vocabulary.
func Java() (*Table, error) {
	return Parse(javaVocabulary)
}

// Load reads a vocabulary from path, or the embedded one when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Java()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}
	return New(doc.Entries)
}

// New validates entries and builds a table preserving their order.
func New(entries []Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Tag == "" {
			return nil, errors.New("vocabulary entry without tag")
		}
		if _, dup := t.index[e.Tag]; dup {
			return nil, fmt.Errorf("duplicate vocabulary tag %q", e.Tag)
		}
		t.index[e.Tag] = len(t.entries)
		t.entries = append(t.entries, e.clone())
	}
	if _, ok := t.index[DefaultTag]; !ok {
		return nil, fmt.Errorf("vocabulary has no %q entry", DefaultTag)
	}
	return t, nil
}

func (t *Table) Has(tag string) bool {
	_, ok := t.index[tag]
	return ok
}

// Response returns the canned response for tag, falling back to the default entry.
func (t *Table) Response(tag string) string {
	if i, ok := t.index[tag]; ok {
		return t.entries[i].Response
	}
	return t.entries[t.index[DefaultTag]].Response
}

// Tags lists every tag in declaration order.
func (t *Table) Tags() []string {
	out := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.Tag)
	}
	return out
}

// Entries returns a deep copy of the entries in declaration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.clone())
	}
	return out
}

func (e Entry) clone() Entry {
	e.Phrases = append([]string(nil), e.Phrases...)
	if e.Keyword != nil {
		kw := *e.Keyword
		e.Keyword = &kw
	}
	return e
}
