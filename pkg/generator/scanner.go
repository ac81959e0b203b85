package generator

import (
	"go.uber.org/zap"
)

// scanState is the mutable state of a single scan. It is created by
// Grammar.Scan and discarded afterwards.
type scanState[ID comparable] struct {
	grammar *Grammar[ID]
	source  []rune
	pos     Position

	// buf holds the candidate lexeme; bufPos[i] is the position of buf[i].
	buf    []rune
	bufPos []Position

	tokens []Token[ID]
}

func newScanState[ID comparable](g *Grammar[ID], source string) *scanState[ID] {
	return &scanState[ID]{
		grammar: g,
		source:  []rune(source),
		pos:     StartPosition(),
		tokens:  make([]Token[ID], 0),
	}
}

// run consumes the source one rune at a time. After every rune the
// candidate buffer is resolved against the one-rune lookahead.
func (s *scanState[ID]) run() error {
	for i, r := range s.source {
		s.pos.Advance(r)
		s.buf = append(s.buf, r)
		s.bufPos = append(s.bufPos, s.pos)

		next := ""
		if i+1 < len(s.source) {
			next = string(s.source[i+1])
		}
		if err := s.resolve(next); err != nil {
			return err
		}
	}

	// resolve only keeps a buffer while a lookahead exists, so this cannot
	// trigger for a well-formed loop. Trailing input is never dropped.
	if len(s.buf) > 0 {
		return s.unexpected()
	}
	return nil
}

// resolve applies maximal munch to the candidate buffer. It returns with a
// non-empty buffer only when the buffer can still grow.
func (s *scanState[ID]) resolve(next string) error {
	rules := s.grammar.rules

	for len(s.buf) > 0 {
		candidate := string(s.buf)
		grows := next != "" && rules.isPrefix(candidate+next)

		// Keep growing: a longer match is still reachable.
		if grows && rules.isPrefix(candidate) {
			return nil
		}

		// Commit: the candidate is a literal and cannot be extended.
		if rule, ok := rules.lookup(candidate); ok && !grows {
			s.emit(rule.id, candidate, rule.ignore, s.bufPos[len(s.bufPos)-1])
			s.buf = s.buf[:0]
			s.bufPos = s.bufPos[:0]
			return nil
		}

		// Decompose: settle the first rune on its own, then retry the rest.
		if err := s.decompose(); err != nil {
			return err
		}
	}
	return nil
}

// decompose resolves the first rune of the buffer as a single-character
// literal or through the pattern rules, and drops it from the buffer.
func (s *scanState[ID]) decompose() error {
	first := s.buf[0]
	at := s.bufPos[0]
	char := string(first)

	if rule, ok := s.grammar.rules.lookup(char); ok {
		s.emit(rule.id, char, rule.ignore, at)
	} else {
		id, class := s.grammar.patterns.classify(first)
		switch class {
		case Matched:
			s.emit(id, char, false, at)
		case Ignored:
			s.grammar.logger.Debug("pattern ignored",
				zap.String("char", char), zap.Int("line", at.Line), zap.Int("column", at.Column))
		default:
			return s.unexpected()
		}
	}

	s.buf = s.buf[1:]
	s.bufPos = s.bufPos[1:]
	return nil
}

func (s *scanState[ID]) emit(id ID, lexeme string, ignore bool, at Position) {
	if ignore {
		return
	}
	s.grammar.logger.Debug("token",
		zap.Any("id", id), zap.String("lexeme", lexeme), zap.Int("line", at.Line), zap.Int("column", at.Column))
	s.tokens = append(s.tokens, NewToken(id, lexeme, at))
}

// unexpected reports the unresolved buffer at the position of its first rune.
func (s *scanState[ID]) unexpected() *LexicalError {
	at := s.pos
	if len(s.bufPos) > 0 {
		at = s.bufPos[0]
	}
	return &LexicalError{Text: string(s.buf), Line: at.Line, Column: at.Column}
}
