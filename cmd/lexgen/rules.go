package main

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/NM711/LexerRuleGenerator/pkg/generator"
	"github.com/NM711/LexerRuleGenerator/pkg/grammars"
)

var (
	makeRulesGrammar string
	checkRules       string
	checkGrammar     string
	checkExplain     []string
)

var makeRulesCmd = &cobra.Command{
	Use:   "make-rules",
	Short: "Print a built-in grammar as a YAML rules file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := grammars.Load(makeRulesGrammar)
		if err != nil {
			return err
		}
		data, err := rules.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a rules file without tokenizing anything",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, name, err := loadRules(checkRules, checkGrammar)
		if err != nil {
			return err
		}
		b, err := rules.Builder(generator.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := b.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		out := cmd.OutOrStdout()
		g := b.Build()
		reportOverridden(out, name, rules, g)

		fmt.Fprintf(out,
			"%s: ok (%d rules, %d collections, %d constructs, %d patterns, %d concat)\n",
			name, len(rules.Rules), len(rules.Collections), len(rules.Constructs), len(rules.Patterns), len(rules.Concat))
		for _, text := range checkExplain {
			fmt.Fprintln(out, explainText(g, text))
		}
		return nil
	},
}

// reportOverridden warns about literal rules that a later rule with the same
// text replaced.
func reportOverridden(w io.Writer, name string, rules *generator.RulesFile, g *generator.Grammar[string]) {
	for _, rule := range rules.Rules {
		if id, _, ok := g.Lookup(rule.Text); ok && id != rule.ID {
			fmt.Fprintf(w, "%s: warning: %s %q is overridden by %s\n", name, rule.ID, rule.Text, id)
		}
	}
}

// explainText describes how the grammar treats text on its own.
func explainText(g *generator.Grammar[string], text string) string {
	if text == "" {
		return `"": no rule`
	}

	if id, ignore, ok := g.Lookup(text); ok {
		desc := fmt.Sprintf("%q: rule %s", text, id)
		if ignore {
			return desc + " (ignored)"
		}
		return desc + concatSuffix(g, id)
	}

	if g.IsPrefix(text) {
		return fmt.Sprintf("%q: prefix of a longer literal", text)
	}

	if utf8.RuneCountInString(text) == 1 {
		r, _ := utf8.DecodeRuneInString(text)
		id, class := g.Classify(r)
		switch class {
		case generator.Matched:
			return fmt.Sprintf("%q: pattern %s", text, id) + concatSuffix(g, id)
		case generator.Ignored:
			return fmt.Sprintf("%q: pattern %s (ignored)", text, id)
		}
	}
	return fmt.Sprintf("%q: no rule", text)
}

func concatSuffix(g *generator.Grammar[string], id string) string {
	target, ok := g.Transition(id)
	if !ok {
		return ""
	}
	return ", runs concatenate into " + target
}

var grammarsCmd = &cobra.Command{
	Use:   "grammars",
	Short: "List the built-in grammars",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range grammars.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	makeRulesCmd.Flags().StringVarP(&makeRulesGrammar, "grammar", "g", "sql", "Built-in grammar to print")

	checkCmd.Flags().StringVar(&checkRules, "rules", "", "YAML rules file")
	checkCmd.Flags().StringVarP(&checkGrammar, "grammar", "g", "", "Built-in grammar")
	checkCmd.Flags().StringArrayVar(&checkExplain, "explain", nil, "Describe how the grammar treats this text (repeatable)")
}
