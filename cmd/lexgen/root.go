package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/NM711/LexerRuleGenerator/pkg/generator"
	"github.com/NM711/LexerRuleGenerator/pkg/grammars"
)

var (
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "lexgen",
	Short: "lexgen - build a lexer from declared token rules",
	Long: `lexgen tokenizes text with a lexer assembled from a YAML rules file.

Rules are literals, character collections, single-character pattern rules and
concatenation rules. See "lexgen make-rules" for an example rules file.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialise logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	err := rootCmd.Execute()
	logFailure(err)
	return err
}

// logFailure logs err unless it is a lexical error, which the tokenize
// command has already rendered.
func logFailure(err error) {
	var lexErr *generator.LexicalError
	if err == nil || errors.As(err, &lexErr) {
		return
	}
	logger.Error("lexgen failed", zap.Error(err))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log scan decisions to stderr")

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(makeRulesCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(grammarsCmd)
}

// newLogger returns a development logger at debug level when verbose is
// set, and a production logger that only reports errors otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	return cfg.Build()
}

// loadRules loads a rules file, or a built-in grammar when rulesFile is
// empty. Exactly one of the two must be given.
func loadRules(rulesFile, grammar string) (*generator.RulesFile, string, error) {
	switch {
	case rulesFile != "" && grammar != "":
		return nil, "", fmt.Errorf("--rules and --grammar are mutually exclusive")
	case rulesFile != "":
		rules, err := generator.LoadRulesFile(rulesFile)
		return rules, rulesFile, err
	case grammar != "":
		rules, err := grammars.Load(grammar)
		return rules, grammar, err
	default:
		return nil, "", fmt.Errorf("one of --rules or --grammar is required")
	}
}
