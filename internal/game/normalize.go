package game

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleCase upper-cases the first rune of every space-delimited token and
// lower-cases the rest of it. Tokens are split on single spaces only, so runs
// of spaces survive and hyphenated words stay one token ("X-MEN" → "X-men").
func TitleCase(s string) string {
	tokens := strings.Split(s, " ")
	for i, tok := range tokens {
		if tok == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(tok)
		tokens[i] = string(unicode.ToUpper(r)) + strings.ToLower(tok[size:])
	}
	return strings.Join(tokens, " ")
}
