package generator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RulesFile represents the structure of a YAML rules file. Token ids are
// plain strings.
type RulesFile struct {
	CaseSensitive bool             `yaml:"case_sensitive,omitempty"`
	Rules         []TokenRule      `yaml:"rules,omitempty"`
	Collections   []CollectionRule `yaml:"collections,omitempty"`
	Constructs    []ConstructRule  `yaml:"constructs,omitempty"`
	Patterns      []PatternRule    `yaml:"patterns,omitempty"`
	Concat        []ConcatRule     `yaml:"concat,omitempty"`
}

// TokenRule represents a literal rule
type TokenRule struct {
	ID     string `yaml:"id"`
	Text   string `yaml:"text"`
	Ignore bool   `yaml:"ignore,omitempty"`
}

// CollectionRule represents a character collection
type CollectionRule struct {
	ID     string `yaml:"id"`
	Chars  string `yaml:"chars"`
	Ignore bool   `yaml:"ignore,omitempty"`
}

// PatternRule represents a single-character fallback rule. Regex must match
// the whole character.
type PatternRule struct {
	ID     string `yaml:"id"`
	Regex  string `yaml:"regex"`
	Ignore bool   `yaml:"ignore,omitempty"`
}

// ConcatRule represents a concatenation rule. Transition defaults to ID.
type ConcatRule struct {
	ID         string `yaml:"id"`
	Transition string `yaml:"transition,omitempty"`
}

// ConstructRule represents a literal assembled from several steps
type ConstructRule struct {
	ID    string              `yaml:"id"`
	Steps []ConstructStepRule `yaml:"steps"`
}

// ConstructStepRule is either raw text or a token id reference
type ConstructStepRule struct {
	Text  string `yaml:"text,omitempty"`
	Token string `yaml:"token,omitempty"`
}

// LoadRulesFile loads and parses a YAML rules file
func LoadRulesFile(filename string) (*RulesFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file '%s': %w", filename, err)
	}

	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("rules file '%s': %w", filename, err)
	}
	return rules, nil
}

// ParseRules parses YAML rules.
func ParseRules(data []byte) (*RulesFile, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, newConfigError("parse rules", "", fmt.Errorf("%w: %v", ErrInvalidRulesFile, err))
	}
	return &rules, nil
}

// Marshal renders the rules as YAML.
func (rf *RulesFile) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(rf)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rules to YAML: %w", err)
	}
	return data, nil
}

// Builder validates the rules and registers them on a new builder, in the
// order rules, collections, constructs, patterns, concat. The file's
// case_sensitive setting is applied before opts.
func (rf *RulesFile) Builder(opts ...Option) (*Builder[string], error) {
	b := NewBuilder[string](append([]Option{WithCaseSensitive(rf.CaseSensitive)}, opts...)...)

	for i, rule := range rf.Rules {
		if rule.ID == "" || rule.Text == "" {
			return nil, invalidEntry("rules", i, "id and text are required")
		}
		b.DefineRule(rule.ID, rule.Text, rule.Ignore)
	}

	for i, c := range rf.Collections {
		if c.ID == "" || c.Chars == "" {
			return nil, invalidEntry("collections", i, "id and chars are required")
		}
		b.DefineCollections([]Collection[string]{{ID: c.ID, Chars: c.Chars, Ignore: c.Ignore}})
	}

	for i, c := range rf.Constructs {
		if c.ID == "" {
			return nil, invalidEntry("constructs", i, "id is required")
		}
		steps := make([]ConstructStep[string], 0, len(c.Steps))
		for j, step := range c.Steps {
			switch {
			case step.Token != "" && step.Text != "":
				return nil, invalidEntry("constructs", i, fmt.Sprintf("step %d sets both text and token", j))
			case step.Token != "":
				steps = append(steps, TokenStep(step.Token))
			default:
				steps = append(steps, TextStep[string](step.Text))
			}
		}
		if err := b.DefineConstruct(c.ID, steps...); err != nil {
			return nil, err
		}
	}

	for i, p := range rf.Patterns {
		if p.ID == "" || p.Regex == "" {
			return nil, invalidEntry("patterns", i, "id and regex are required")
		}
		if err := b.DefinePatternRegex(p.ID, p.Regex, p.Ignore); err != nil {
			return nil, err
		}
	}

	for i, c := range rf.Concat {
		if c.ID == "" {
			return nil, invalidEntry("concat", i, "id is required")
		}
		var err error
		if c.Transition == "" {
			err = b.DefineConcat(c.ID)
		} else {
			err = b.DefineConcat(c.ID, c.Transition)
		}
		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Grammar is shorthand for building the rules straight into a grammar.
func (rf *RulesFile) Grammar(opts ...Option) (*Grammar[string], error) {
	b, err := rf.Builder(opts...)
	if err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func invalidEntry(section string, index int, reason string) *ConfigError {
	return newConfigError("rules file", fmt.Sprintf("%s[%d]", section, index),
		fmt.Errorf("%w: %s", ErrInvalidRulesFile, reason))
}
