// Package grammars ships sample rule files that exercise the generator:
// a SQL schema subset, a toy programming language and a greeting grammar.
package grammars

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/NM711/LexerRuleGenerator/pkg/generator"
)

//go:embed rules/*.yaml
var rulesFS embed.FS

// Names returns the names of the built-in grammars, sorted.
func Names() []string {
	entries, err := fs.ReadDir(rulesFS, "rules")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	sort.Strings(names)
	return names
}

// Source returns the raw YAML of a built-in grammar.
func Source(name string) ([]byte, error) {
	data, err := rulesFS.ReadFile(path.Join("rules", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown grammar %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Load parses a built-in grammar.
func Load(name string) (*generator.RulesFile, error) {
	data, err := Source(name)
	if err != nil {
		return nil, err
	}
	rules, err := generator.ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("grammar %q: %w", name, err)
	}
	return rules, nil
}
