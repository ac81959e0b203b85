package generator

import (
	"errors"
	"fmt"
)

// Configuration errors. They are always wrapped in a *ConfigError.
var (
	ErrNoSource         = errors.New("data source has not been set")
	ErrDuplicateConcat  = errors.New("id has already been set to be concatenated")
	ErrInvalidConstruct = errors.New("invalid construct rule")
	ErrInvalidPattern   = errors.New("invalid pattern rule")
	ErrInvalidRulesFile = errors.New("invalid rules file")
)

// ConfigError reports misuse of the registration or scanning API. It is
// returned at the point of misuse and is never retried.
type ConfigError struct {
	Op     string // operation that failed, e.g. "define concat"
	Detail string // optional context, e.g. the offending id
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Detail, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// LexicalError reports input that no literal rule, collection or pattern
// rule could classify. Text is the unresolved buffer starting at the
// offending character, and the position is that character's position.
type LexicalError struct {
	Text   string
	Line   int
	Column int
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("unexpected %q at line %d, column %d", e.Text, e.Line, e.Column)
}

// Position returns the position of the offending character.
func (e *LexicalError) Position() Position {
	return Position{Line: e.Line, Column: e.Column}
}

func newConfigError(op, detail string, err error) *ConfigError {
	return &ConfigError{Op: op, Detail: detail, Err: err}
}
