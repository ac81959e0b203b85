package generator

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// repass fuses consecutive tokens whose id takes part in concatenation.
//
// A run is a maximal sequence of tokens sharing one concatenation id. When
// the run's combined lexeme is longer than one character it is replaced by a
// single token carrying the transition id and the position of the last token
// of the run. Shorter runs are kept as they are. A run still open at the end
// of the stream is flushed the same way.
func (g *Grammar[ID]) repass(tokens []Token[ID]) []Token[ID] {
	out := make([]Token[ID], 0, len(tokens))

	var (
		active bool
		runID  ID
		run    []Token[ID]
	)

	flush := func() {
		if !active {
			return
		}
		var sb strings.Builder
		for _, tok := range run {
			sb.WriteString(tok.Lexeme)
		}
		merged := sb.String()

		if utf8.RuneCountInString(merged) > 1 {
			last := run[len(run)-1]
			out = append(out, NewToken(g.concat[runID], merged, last.Position()))
			g.logger.Debug("merged run",
				zap.Any("id", runID), zap.String("lexeme", merged), zap.Int("fragments", len(run)))
		} else {
			out = append(out, run...)
		}
		active = false
		run = run[:0]
	}

	for _, tok := range tokens {
		if active && tok.ID == runID {
			run = append(run, tok)
			continue
		}

		flush()

		if _, ok := g.concat[tok.ID]; ok {
			active = true
			runID = tok.ID
			run = append(run, tok)
			continue
		}
		out = append(out, tok)
	}
	flush()

	return out
}
