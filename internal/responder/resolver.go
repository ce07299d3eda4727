// Package responder answers free-text questions with canned vocabulary responses.
package responder

import (
	"chatbots/internal/matcher"
	"chatbots/internal/vocab"
)

// ScanOrder is the order in which hits are reduced to a single tag.
type ScanOrder int

const (
	// Forward scans hits as the matcher emitted them.
	Forward ScanOrder = iota
	// Reverse scans hits back to front.
	Reverse
)

func (o ScanOrder) String() string {
	if o == Reverse {
		return "reverse"
	}
	return "forward"
}

// BestMatch reduces hits to one tag. Each hit in scan order overwrites the result
// with its tag when the table knows it and resets it to the default tag otherwise,
// so an unknown tag late in the scan discards earlier valid hits.
func BestMatch(hits []matcher.Hit, table *vocab.Table, order ScanOrder) string {
	best := vocab.DefaultTag
	n := len(hits)
	for i := range hits {
		h := hits[i]
		if order == Reverse {
			h = hits[n-1-i]
		}
		if table.Has(h.Tag) {
			best = h.Tag
		} else {
			best = vocab.DefaultTag
		}
	}
	return best
}

// Resolver pairs a matcher with a scan order over one response table.
type Resolver struct {
	table   *vocab.Table
	matcher matcher.Matcher
	order   ScanOrder
}

func NewResolver(table *vocab.Table, m matcher.Matcher, order ScanOrder) *Resolver {
	return &Resolver{table: table, matcher: m, order: order}
}

// Tag returns the tag input resolves to.
func (r *Resolver) Tag(input string) string {
	return BestMatch(r.matcher.Find(input), r.table, r.order)
}

// Resolve returns the canned response for input. Empty input yields the default response.
func (r *Resolver) Resolve(input string) string {
	return r.table.Response(r.Tag(input))
}
