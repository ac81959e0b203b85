package generator

import (
	"github.com/NM711/LexerRuleGenerator/pkg/trie"
)

// ruleData is what a literal maps to in the rule table.
type ruleData[ID comparable] struct {
	id     ID
	ignore bool
}

// ruleTable maps literals to rules. Every literal is mirrored into the trie
// so that prefix queries and exact lookups always agree.
type ruleTable[ID comparable] struct {
	rules map[string]ruleData[ID]
	tree  *trie.Trie
}

func newRuleTable[ID comparable]() *ruleTable[ID] {
	return &ruleTable[ID]{
		rules: make(map[string]ruleData[ID]),
		tree:  trie.New(),
	}
}

// define stores literal -> {id, ignore}. A later definition of the same
// literal replaces the earlier one.
func (rt *ruleTable[ID]) define(id ID, literal string, ignore bool) {
	rt.rules[literal] = ruleData[ID]{id: id, ignore: ignore}
	rt.tree.Insert(literal)
}

// expandCollection defines one single-character rule per rune of chars.
func (rt *ruleTable[ID]) expandCollection(id ID, chars string, ignore bool) {
	for _, r := range chars {
		rt.define(id, string(r), ignore)
	}
}

func (rt *ruleTable[ID]) lookup(candidate string) (ruleData[ID], bool) {
	data, ok := rt.rules[candidate]
	return data, ok
}

func (rt *ruleTable[ID]) isPrefix(candidate string) bool {
	return rt.tree.Search(candidate)
}

// Classification is the outcome of running a character through the pattern
// rules.
type Classification int

const (
	Unmatched Classification = iota
	Matched
	Ignored
)

func (c Classification) String() string {
	switch c {
	case Matched:
		return "matched"
	case Ignored:
		return "ignored"
	default:
		return "unmatched"
	}
}

// patternEntry is a single-character fallback rule.
type patternEntry[ID comparable] struct {
	id     ID
	match  func(rune) bool
	ignore bool
}

// patternRuleSet is consulted only for characters the rule table cannot
// resolve. Rules are tried in registration order and the first match wins.
type patternRuleSet[ID comparable] struct {
	rules []patternEntry[ID]
}

func (ps *patternRuleSet[ID]) register(id ID, match func(rune) bool, ignore bool) {
	ps.rules = append(ps.rules, patternEntry[ID]{id: id, match: match, ignore: ignore})
}

func (ps *patternRuleSet[ID]) classify(r rune) (ID, Classification) {
	for _, rule := range ps.rules {
		if !rule.match(r) {
			continue
		}
		if rule.ignore {
			return rule.id, Ignored
		}
		return rule.id, Matched
	}
	var zero ID
	return zero, Unmatched
}
