// Package matcher finds vocabulary triggers in free text.
package matcher

// Hit is one trigger occurrence. Start and End are token indexes, End exclusive.
type Hit struct {
	Tag   string
	Start int
	End   int
}

// Matcher reports hits in document order.
type Matcher interface {
	Find(text string) []Hit
}
