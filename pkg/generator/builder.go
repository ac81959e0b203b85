package generator

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Rule registers a literal under an id.
type Rule[ID comparable] struct {
	ID      ID
	Literal string
}

// Collection registers every character of Chars as its own literal, all
// sharing the same id and ignore flag.
type Collection[ID comparable] struct {
	ID     ID
	Chars  string
	Ignore bool
}

// ConstructStep is one piece of a construct rule: either raw text or a
// reference to a token id already registered by a single literal.
type ConstructStep[ID comparable] struct {
	Text    string
	Token   ID
	IsToken bool
}

// TextStep returns a construct step contributing raw text.
func TextStep[ID comparable](text string) ConstructStep[ID] {
	return ConstructStep[ID]{Text: text}
}

// TokenStep returns a construct step contributing the literal of id.
func TokenStep[ID comparable](id ID) ConstructStep[ID] {
	return ConstructStep[ID]{Token: id, IsToken: true}
}

// Option configures a Builder.
type Option func(*config)

type config struct {
	caseSensitive bool
	logger        *zap.Logger
}

// WithCaseSensitive disables lower-casing of literals and source text.
func WithCaseSensitive(caseSensitive bool) Option {
	return func(c *config) {
		c.caseSensitive = caseSensitive
	}
}

// WithLogger sets the logger used for scan diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// literalDef is a recorded literal, collection or construct registration.
// Definitions are replayed in order by Build so the last write for a literal
// wins. Constructs keep their steps and are resolved when the grammar is
// built, under the case mode in effect at that point.
type literalDef[ID comparable] struct {
	id         ID
	text       string
	ignore     bool
	collection bool
	steps      []ConstructStep[ID]
}

// Builder collects rule registrations and assembles them into an immutable
// Grammar. Case folding is applied when the grammar is built, so the case
// mode may be changed after rules have been registered.
type Builder[ID comparable] struct {
	config
	defs     []literalDef[ID]
	patterns patternRuleSet[ID]
	concat   map[ID]ID
}

// NewBuilder creates an empty builder. Grammars are case-insensitive unless
// WithCaseSensitive(true) is given.
func NewBuilder[ID comparable](opts ...Option) *Builder[ID] {
	b := &Builder[ID]{
		config: config{logger: zap.NewNop()},
		concat: make(map[ID]ID),
	}
	for _, opt := range opts {
		opt(&b.config)
	}
	return b
}

// SetCaseSensitive changes the case mode used by Build.
func (b *Builder[ID]) SetCaseSensitive(caseSensitive bool) {
	b.caseSensitive = caseSensitive
}

// CaseSensitive reports the current case mode.
func (b *Builder[ID]) CaseSensitive() bool {
	return b.caseSensitive
}

// DefineRule registers literal under id. Ignored rules still consume input
// but never produce tokens.
func (b *Builder[ID]) DefineRule(id ID, literal string, ignore bool) {
	if literal == "" {
		return
	}
	b.defs = append(b.defs, literalDef[ID]{id: id, text: literal, ignore: ignore})
}

// DefineTokenRules registers many literals at once. None of them are ignored.
func (b *Builder[ID]) DefineTokenRules(rules []Rule[ID]) {
	for _, rule := range rules {
		b.DefineRule(rule.ID, rule.Literal, false)
	}
}

// DefineCollections expands each collection into single-character rules.
func (b *Builder[ID]) DefineCollections(collections []Collection[ID]) {
	for _, c := range collections {
		if c.Chars == "" {
			continue
		}
		b.defs = append(b.defs, literalDef[ID]{id: c.ID, text: c.Chars, ignore: c.Ignore, collection: true})
	}
}

// DefinePatternRule appends a single-character fallback rule. Pattern rules
// are consulted in registration order, only for characters that no literal
// rule resolves. A nil predicate is rejected.
func (b *Builder[ID]) DefinePatternRule(id ID, match func(rune) bool, ignore bool) error {
	if match == nil {
		return newConfigError("define pattern", fmt.Sprintf("%v", id),
			fmt.Errorf("%w: nil predicate", ErrInvalidPattern))
	}
	b.patterns.register(id, match, ignore)
	return nil
}

// DefinePatternRegex is DefinePatternRule with the predicate given as a
// regular expression. The expression must match the whole character.
func (b *Builder[ID]) DefinePatternRegex(id ID, expr string, ignore bool) error {
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return newConfigError("define pattern", fmt.Sprintf("%q", expr), fmt.Errorf("%w: %v", ErrInvalidPattern, err))
	}
	return b.DefinePatternRule(id, func(r rune) bool {
		return re.MatchString(string(r))
	}, ignore)
}

// DefineConcat declares that runs of tokens with id are fused into a single
// token. The fused token takes transition[0] as its id when given, id
// otherwise. Each id may be registered once.
func (b *Builder[ID]) DefineConcat(id ID, transition ...ID) error {
	if _, exists := b.concat[id]; exists {
		return newConfigError("define concat", fmt.Sprintf("%v", id), ErrDuplicateConcat)
	}
	target := id
	if len(transition) > 0 {
		target = transition[0]
	}
	b.concat[id] = target
	return nil
}

// DefineConstruct registers a literal assembled from several steps. Token
// steps stand for the literal registered for that id, which must be unique.
// Steps are resolved again by Build, so a construct follows later changes to
// the case mode.
func (b *Builder[ID]) DefineConstruct(id ID, steps ...ConstructStep[ID]) error {
	if len(steps) <= 1 {
		return newConfigError("define construct", fmt.Sprintf("%v", id),
			fmt.Errorf("%w: constructs need more than one step, got %d", ErrInvalidConstruct, len(steps)))
	}

	texts := b.resolveDefs(nil)
	if _, err := b.constructText(steps, b.defs, texts); err != nil {
		return newConfigError("define construct", fmt.Sprintf("%v", id), err)
	}

	b.defs = append(b.defs, literalDef[ID]{id: id, steps: slices.Clone(steps)})
	return nil
}

// Validate resolves every construct under the current case mode. A construct
// that was valid when it was defined can stop resolving once the case mode
// changes, e.g. when two literals of its token id no longer fold together.
func (b *Builder[ID]) Validate() error {
	var first error
	b.resolveDefs(func(def literalDef[ID], err error) {
		if first == nil {
			first = newConfigError("build", fmt.Sprintf("construct %v", def.id), err)
		}
	})
	return first
}

// resolveDefs returns the case-folded text of every recorded definition.
// Construct steps are resolved against the definitions recorded before the
// construct. A construct that does not resolve gets an empty text and is
// passed to onError when it is set.
func (b *Builder[ID]) resolveDefs(onError func(literalDef[ID], error)) []string {
	texts := make([]string, len(b.defs))
	for i, def := range b.defs {
		if def.steps == nil {
			texts[i] = b.normalize(def.text)
			continue
		}
		text, err := b.constructText(def.steps, b.defs[:i], texts[:i])
		if err != nil {
			if onError != nil {
				onError(def, err)
			}
			continue
		}
		texts[i] = text
	}
	return texts
}

func (b *Builder[ID]) constructText(steps []ConstructStep[ID], defs []literalDef[ID], texts []string) (string, error) {
	var sb strings.Builder
	for _, step := range steps {
		if !step.IsToken {
			sb.WriteString(b.normalize(step.Text))
			continue
		}
		literals := literalsFor(step.Token, defs, texts)
		switch len(literals) {
		case 0:
			return "", fmt.Errorf("%w: no rule defined for id %v", ErrInvalidConstruct, step.Token)
		case 1:
			sb.WriteString(literals[0])
		default:
			return "", fmt.Errorf("%w: id %v has %d literals", ErrInvalidConstruct, step.Token, len(literals))
		}
	}
	return sb.String(), nil
}

// literalsFor returns the distinct literals mapped to id once defs have been
// applied, in registration order. texts holds the resolved text of each def.
func literalsFor[ID comparable](id ID, defs []literalDef[ID], texts []string) []string {
	current := make(map[string]ID)
	var order []string
	add := func(literal string, owner ID) {
		if _, seen := current[literal]; !seen {
			order = append(order, literal)
		}
		current[literal] = owner
	}

	for i, def := range defs {
		if texts[i] == "" {
			continue
		}
		if !def.collection {
			add(texts[i], def.id)
			continue
		}
		for _, r := range texts[i] {
			add(string(r), def.id)
		}
	}

	var literals []string
	for _, literal := range order {
		if current[literal] == id {
			literals = append(literals, literal)
		}
	}
	return literals
}

func (b *Builder[ID]) normalize(text string) string {
	if b.caseSensitive {
		return text
	}
	return strings.ToLower(text)
}

// Build assembles the registered rules into a grammar. The builder can keep
// being used afterwards; later registrations do not affect grammars that
// were already built. Constructs that do not resolve under the current case
// mode are left out; call Validate first to surface them as errors.
func (b *Builder[ID]) Build() *Grammar[ID] {
	g := &Grammar[ID]{
		rules:         newRuleTable[ID](),
		patterns:      patternRuleSet[ID]{rules: slices.Clone(b.patterns.rules)},
		concat:        maps.Clone(b.concat),
		caseSensitive: b.caseSensitive,
		logger:        b.logger,
	}

	texts := b.resolveDefs(func(def literalDef[ID], err error) {
		b.logger.Warn("construct dropped", zap.Any("id", def.id), zap.Error(err))
	})
	for i, def := range b.defs {
		text := texts[i]
		if text == "" {
			continue
		}
		if def.collection {
			g.rules.expandCollection(def.id, text, def.ignore)
		} else {
			g.rules.define(def.id, text, def.ignore)
		}
	}

	if ce := g.logger.Check(zap.DebugLevel, "grammar built"); ce != nil {
		ce.Write(
			zap.Int("literals", len(g.rules.rules)),
			zap.Int("trie_nodes", g.rules.tree.Len()),
			zap.String("trie", g.rules.tree.DebugString()),
		)
	}

	return g
}
