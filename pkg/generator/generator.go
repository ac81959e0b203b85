// Package generator builds lexers from declared rules instead of
// hand-written scanners.
//
// Literal rules, character collections and single-character pattern rules
// are registered on a Builder, which assembles them into an immutable
// Grammar. Scanning uses maximal munch backed by a prefix trie: a candidate
// keeps growing while a longer literal is still reachable, commits when it
// is an exact literal that cannot grow, and otherwise falls back to
// resolving its first character on its own. Concatenation rules then fuse
// runs of same-id tokens, e.g. digits into numbers.
//
// Generator wraps a Builder with a source text and an accumulating token
// buffer for callers that prefer a stateful API.
package generator

import (
	"slices"
)

// Generator is a stateful lexer: rules are registered through the embedded
// Builder, the source is set with SetSource and Tokenize appends the scanned
// tokens to the buffer returned by Tokens.
//
// A Generator is not safe for concurrent use.
type Generator[ID comparable] struct {
	*Builder[ID]

	source    string
	hasSource bool
	tokens    []Token[ID]
}

// New creates a generator with no rules and no source.
func New[ID comparable](opts ...Option) *Generator[ID] {
	return &Generator[ID]{
		Builder: NewBuilder[ID](opts...),
		tokens:  make([]Token[ID], 0),
	}
}

// FromBuilder creates a generator around rules already registered on b.
func FromBuilder[ID comparable](b *Builder[ID]) *Generator[ID] {
	return &Generator[ID]{
		Builder: b,
		tokens:  make([]Token[ID], 0),
	}
}

// SetSource sets the text to scan. Unless caseSensitive is true both the
// source and every registered literal are lower-cased before scanning.
func (g *Generator[ID]) SetSource(text string, caseSensitive bool) {
	g.source = text
	g.hasSource = true
	g.SetCaseSensitive(caseSensitive)
}

// Tokenize scans the source and appends the result to the token buffer.
// Calling it again appends again; use a fresh Generator for a fresh scan.
// On a lexical error the tokens emitted before the failure are kept. A
// construct that no longer resolves under the source's case mode is a
// configuration error.
func (g *Generator[ID]) Tokenize() error {
	if !g.hasSource {
		return newConfigError("tokenize", "", ErrNoSource)
	}

	if err := g.Validate(); err != nil {
		return err
	}

	tokens, err := g.Build().Scan(g.source)
	g.tokens = append(g.tokens, tokens...)
	return err
}

// Tokens returns a copy of the accumulated tokens.
func (g *Generator[ID]) Tokens() []Token[ID] {
	return slices.Clone(g.tokens)
}
