package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NM711/LexerRuleGenerator/pkg/generator"
)

var (
	tokenizeRules         string
	tokenizeGrammar       string
	tokenizeInput         string
	tokenizeOutput        string
	tokenizeCaseSensitive bool
	tokenizeExit0         bool
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize",
	Short: "Tokenize input and print one JSON token per line",
	Example: `  lexgen tokenize --grammar sql --input schema.sql
  lexgen tokenize --rules custom.yaml --output tokens.jsonl < source.txt
  echo "create table users ( )" | lexgen tokenize --grammar sql`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, name, err := loadRules(tokenizeRules, tokenizeGrammar)
		if err != nil {
			return err
		}

		input, err := readInput(tokenizeInput)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if tokenizeInput != "" {
			name = tokenizeInput
		}

		tokens, scanErr := tokenizeSource(rules, input, tokenizeCaseSensitive)

		var lexErr *generator.LexicalError
		if scanErr != nil && !errors.As(scanErr, &lexErr) {
			// configuration problem, nothing was scanned
			return scanErr
		}

		// Output tokens even if there was an error
		if err := writeTokensTo(tokenizeOutput, cmd.OutOrStdout(), tokens); err != nil {
			return err
		}

		if lexErr != nil {
			logger.Debug("tokenization failed", zap.Error(lexErr), zap.Int("tokens", len(tokens)))
			if tokenizeExit0 {
				return nil
			}
			fmt.Fprint(cmd.ErrOrStderr(), formatLexicalError(input, name, lexErr))
			return lexErr
		}
		return nil
	},
}

func init() {
	tokenizeCmd.Flags().StringVar(&tokenizeRules, "rules", "", "YAML rules file")
	tokenizeCmd.Flags().StringVarP(&tokenizeGrammar, "grammar", "g", "", "Built-in grammar (see 'lexgen grammars')")
	tokenizeCmd.Flags().StringVarP(&tokenizeInput, "input", "i", "", "Input file (defaults to stdin)")
	tokenizeCmd.Flags().StringVarP(&tokenizeOutput, "output", "o", "", "Output file (defaults to stdout)")
	tokenizeCmd.Flags().BoolVar(&tokenizeCaseSensitive, "case-sensitive", false, "Match case exactly, overriding the rules file")
	tokenizeCmd.Flags().BoolVar(&tokenizeExit0, "exit0", false, "Exit with code 0 even on tokenization errors (suppress stderr)")
}

// tokenizeSource scans input with rules. On a lexical error the tokens
// produced before the failure are returned with the error.
func tokenizeSource(rules *generator.RulesFile, input string, caseSensitive bool) ([]generator.Token[string], error) {
	opts := []generator.Option{generator.WithLogger(logger)}
	if caseSensitive {
		opts = append(opts, generator.WithCaseSensitive(true))
	}

	b, err := rules.Builder(opts...)
	if err != nil {
		return nil, err
	}

	g := generator.FromBuilder(b)
	g.SetSource(input, b.CaseSensitive())
	err = g.Tokenize()
	return g.Tokens(), err
}

// writeTokensTo writes tokens to filename, or to stdout when filename is empty.
func writeTokensTo(filename string, stdout io.Writer, tokens []generator.Token[string]) error {
	if filename == "" {
		return writeTokens(stdout, tokens)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating output file '%s': %w", filename, err)
	}
	if err := writeTokens(file, tokens); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing output file '%s': %w", filename, err)
	}
	return nil
}

// writeTokens outputs tokens as JSON, one per line.
func writeTokens(w io.Writer, tokens []generator.Token[string]) error {
	for _, token := range tokens {
		jsonBytes, err := json.Marshal(token)
		if err != nil {
			return fmt.Errorf("JSON encoding error: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(jsonBytes)); err != nil {
			return err
		}
	}
	return nil
}
