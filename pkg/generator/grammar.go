package generator

import (
	"strings"

	"go.uber.org/zap"
)

// Grammar is an immutable set of literal rules, pattern rules and
// concatenation rules. It is created by Builder.Build and may be used for
// any number of scans.
type Grammar[ID comparable] struct {
	rules         *ruleTable[ID]
	patterns      patternRuleSet[ID]
	concat        map[ID]ID
	caseSensitive bool
	logger        *zap.Logger
}

// Scan tokenizes source and returns the resulting tokens. Each call starts
// from a fresh scan state. On a lexical error the tokens emitted before the
// failure are returned together with the error; they have not been through
// the concatenation pass.
func (g *Grammar[ID]) Scan(source string) ([]Token[ID], error) {
	s := newScanState(g, g.normalize(source))
	if err := s.run(); err != nil {
		g.logger.Debug("scan failed", zap.Error(err), zap.Int("tokens", len(s.tokens)))
		return s.tokens, err
	}

	tokens := s.tokens
	if len(g.concat) > 0 {
		tokens = g.repass(tokens)
	}
	return tokens, nil
}

// Lookup returns the rule registered for an exact literal. The literal is
// case-folded the same way source text is.
func (g *Grammar[ID]) Lookup(literal string) (id ID, ignore bool, ok bool) {
	data, ok := g.rules.lookup(g.normalize(literal))
	return data.id, data.ignore, ok
}

// IsPrefix reports whether candidate can still grow into a registered literal.
func (g *Grammar[ID]) IsPrefix(candidate string) bool {
	return g.rules.isPrefix(g.normalize(candidate))
}

// Classify runs a single character through the pattern rules.
func (g *Grammar[ID]) Classify(r rune) (ID, Classification) {
	return g.patterns.classify(r)
}

// Transition returns the id fused runs of id are relabelled with, and
// whether id takes part in concatenation at all.
func (g *Grammar[ID]) Transition(id ID) (ID, bool) {
	target, ok := g.concat[id]
	return target, ok
}

// CaseSensitive reports whether the grammar preserves case.
func (g *Grammar[ID]) CaseSensitive() bool {
	return g.caseSensitive
}

func (g *Grammar[ID]) normalize(text string) string {
	if g.caseSensitive {
		return text
	}
	return strings.ToLower(text)
}
