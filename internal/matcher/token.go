package matcher

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultFuzzyRatio allows edits up to 30% of the pattern length.
const DefaultFuzzyRatio = 0.3

// minFuzzyEdits keeps room for one transposition.
const minFuzzyEdits = 2

// KeywordRule matches a single token, exactly or within an edit budget.
type KeywordRule struct {
	Tag   string
	Text  string
	Fuzzy bool
}

// TokenMatcher matches single-token rules against each input token.
type TokenMatcher struct {
	rules []KeywordRule
	ratio float64
}

func NewTokenMatcher(rules []KeywordRule, fuzzyRatio float64) *TokenMatcher {
	cp := make([]KeywordRule, len(rules))
	for i, r := range rules {
		r.Text = strings.ToLower(r.Text)
		cp[i] = r
	}
	if fuzzyRatio < 0 {
		fuzzyRatio = DefaultFuzzyRatio
	}
	return &TokenMatcher{rules: cp, ratio: fuzzyRatio}
}

func (m *TokenMatcher) Find(text string) []Hit {
	var hits []Hit
	for i, tok := range Tokenize(text) {
		for _, r := range m.rules {
			if m.matches(r, tok.Lower) {
				hits = append(hits, Hit{Tag: r.Tag, Start: i, End: i + 1})
			}
		}
	}
	return hits
}

func (m *TokenMatcher) matches(r KeywordRule, token string) bool {
	if token == r.Text {
		return true
	}
	if !r.Fuzzy {
		return false
	}
	budget := MaxEdits(r.Text, m.ratio)
	return levenshtein.ComputeDistance(token, r.Text) <= budget
}

// MaxEdits is the edit budget of a fuzzy pattern: ratio of its length rounded half
// to even, never below two.
func MaxEdits(pattern string, ratio float64) int {
	n := utf8.RuneCountInString(pattern)
	edits := int(math.RoundToEven(ratio * float64(n)))
	if edits < minFuzzyEdits {
		return minFuzzyEdits
	}
	return edits
}
