package highlight

import (
	"regexp"

	"github.com/rivo/uniseg"
)

// rule pairs a token kind with a matcher anchored at the current position.
type rule struct {
	kind    Kind
	pattern *regexp.Regexp
}

// rules are tried in order at every position; the first match wins.
// Reordering changes classification (a quote inside a comment stays part
// of the comment because comments are tried first).
var rules = []rule{
	{KindComment, regexp.MustCompile(`^(?://.*|/\*[\s\S]*?\*/)`)},
	{KindString, regexp.MustCompile(`^(?:"(?:\\.|[^"\\\r\n])*"|'(?:\\.|[^'\\\r\n])*'|` +
		"`" + `(?:\\.|[^` + "`" + `\\\r\n])*` + "`)")},
	{KindNumber, regexp.MustCompile(`^\d+(?:\.\d+)?\b`)},
	{KindIdentifier, regexp.MustCompile(`^\b[a-zA-Z_$][a-zA-Z0-9_$]*\b`)},
	{KindOperator, regexp.MustCompile(`^[+\-*/%=&|<>!^~?:]+`)},
	{KindPunctuation, regexp.MustCompile(`^[(){}\[\],.;]`)},
	{KindWhitespace, regexp.MustCompile(`^[\s\v\x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]+`)},
}

// Tokenize splits text into classified tokens. It never fails: a position
// no rule matches yields a single-character KindText token, so the loop
// always advances. Concatenating the token texts reproduces text.
func Tokenize(text string) []Token {
	tokens := make([]Token, 0, len(text)/4+1)

	pos := 0
	for pos < len(text) {
		rest := text[pos:]
		tok, ok := matchRule(rest)
		if !ok {
			tok = Token{Kind: KindText, Text: firstCharacter(rest)}
		}
		tokens = append(tokens, tok)
		pos += len(tok.Text)
	}

	return tokens
}

// matchRule returns the token produced by the first matching rule.
func matchRule(rest string) (Token, bool) {
	for _, r := range rules {
		loc := r.pattern.FindStringIndex(rest)
		if loc == nil || loc[1] == 0 {
			continue
		}
		match := rest[:loc[1]]
		kind := r.kind
		if kind == KindIdentifier && IsKeyword(match) {
			kind = KindKeyword
		}
		return Token{Kind: kind, Text: match}, true
	}
	return Token{}, false
}

// firstCharacter returns the first user-perceived character of s.
// It is never empty for a non-empty s.
func firstCharacter(s string) string {
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	if cluster == "" {
		return s[:1]
	}
	return cluster
}
