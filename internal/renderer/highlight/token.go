// Package highlight tokenizes editor content for syntax highlighting.
//
// Tokenize is a fast, rule-ordered approximation of a lexer rather than a
// parser for any particular language. Its one hard guarantee is lossless
// reconstruction: concatenating the text of every token reproduces the
// input exactly. A Scheduler debounces calls into Tokenize so that a burst
// of keystrokes produces a single tokenization.
package highlight

import "strings"

// Kind classifies a token.
type Kind uint8

// Token kinds, in the order their rules are tried (Text is the fallback).
const (
	KindText Kind = iota
	KindComment
	KindString
	KindNumber
	KindKeyword
	KindIdentifier
	KindOperator
	KindPunctuation
	KindWhitespace

	kindCount
)

var kindNames = [kindCount]string{
	KindText:        "text",
	KindComment:     "comment",
	KindString:      "string",
	KindNumber:      "number",
	KindKeyword:     "keyword",
	KindIdentifier:  "identifier",
	KindOperator:    "operator",
	KindPunctuation: "punctuation",
	KindWhitespace:  "whitespace",
}

// String returns the kind name used by renderers to pick a style.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Kinds returns every token kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := KindText; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// KindFromString returns the kind with the given name, or KindText.
func KindFromString(s string) Kind {
	for i, name := range kindNames {
		if name == s {
			return Kind(i)
		}
	}
	return KindText
}

// Token is a classified substring of the input.
type Token struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Join concatenates token texts. For the output of Tokenize it returns
// the original input.
func Join(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// Count returns the number of tokens of each kind.
func Count(tokens []Token) map[Kind]int {
	counts := make(map[Kind]int)
	for _, t := range tokens {
		counts[t.Kind]++
	}
	return counts
}
