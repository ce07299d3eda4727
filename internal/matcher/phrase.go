package matcher

import (
	"cmp"
	"slices"
)

// PhraseRule lists the phrases that trigger a tag.
type PhraseRule struct {
	Tag     string
	Phrases []string
}

type phrasePattern struct {
	tag    string
	tokens []string
}

// PhraseMatcher matches lowercase token sequences.
type PhraseMatcher struct {
	patterns []phrasePattern
}

func NewPhraseMatcher(rules []PhraseRule) *PhraseMatcher {
	m := &PhraseMatcher{}
	for _, r := range rules {
		for _, p := range r.Phrases {
			toks := lowerTokens(p)
			if len(toks) == 0 {
				continue
			}
			m.patterns = append(m.patterns, phrasePattern{tag: r.Tag, tokens: toks})
		}
	}
	return m
}

func (m *PhraseMatcher) Find(text string) []Hit {
	input := lowerTokens(text)
	seen := make(map[Hit]bool)
	var hits []Hit
	for start := range input {
		for _, p := range m.patterns {
			end := start + len(p.tokens)
			if end > len(input) || !slices.Equal(input[start:end], p.tokens) {
				continue
			}
			h := Hit{Tag: p.tag, Start: start, End: end}
			if seen[h] {
				continue
			}
			seen[h] = true
			hits = append(hits, h)
		}
	}
	slices.SortStableFunc(hits, func(a, b Hit) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})
	return hits
}
