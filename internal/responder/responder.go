package responder

import (
	"strings"

	"chatbots/internal/matcher"
	"chatbots/internal/vocab"
)

// Responder bundles the keyword and phrase resolvers built from one vocabulary.
// The phrase resolver, scanning in reverse, answers interactive input.
type Responder struct {
	table   *vocab.Table
	Keyword *Resolver
	Phrase  *Resolver
}

func New(table *vocab.Table, fuzzyRatio float64) *Responder {
	var kw []matcher.KeywordRule
	var ph []matcher.PhraseRule
	for _, e := range table.Entries() {
		if e.Keyword != nil {
			kw = append(kw, matcher.KeywordRule{Tag: e.Tag, Text: e.Keyword.Text, Fuzzy: e.Keyword.Fuzzy})
		}
		if len(e.Phrases) > 0 {
			ph = append(ph, matcher.PhraseRule{Tag: e.Tag, Phrases: e.Phrases})
		}
	}
	return &Responder{
		table:   table,
		Keyword: NewResolver(table, matcher.NewTokenMatcher(kw, fuzzyRatio), Forward),
		Phrase:  NewResolver(table, matcher.NewPhraseMatcher(ph), Reverse),
	}
}

func (r *Responder) Table() *vocab.Table { return r.table }

// Respond answers input with the phrase resolver.
func (r *Responder) Respond(input string) string {
	return r.Phrase.Resolve(input)
}

func (r *Responder) Farewell() string {
	return r.table.Response(vocab.FarewellTag)
}

// IsFarewell reports whether input is the farewell word, ignoring case and
// surrounding whitespace, so " Bye " also ends a session.
func IsFarewell(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), vocab.Farewell)
}
