package matcher

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/words"
)

// Token is a word or punctuation mark. Start and End are byte offsets into the input.
type Token struct {
	Text  string
	Lower string
	Start int
	End   int
}

// Tokenize splits text on Unicode word boundaries and drops whitespace.
func Tokenize(text string) []Token {
	var out []Token
	iter := words.FromString(text)
	for iter.Next() {
		v := iter.Value()
		if strings.TrimSpace(v) == "" {
			continue
		}
		out = append(out, Token{
			Text:  v,
			Lower: strings.ToLower(v),
			Start: iter.Start(),
			End:   iter.End(),
		})
	}
	return out
}

func lowerTokens(text string) []string {
	toks := Tokenize(text)
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Lower
	}
	return out
}
