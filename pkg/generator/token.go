package generator

// Position is a line and column cursor into the source text.
//
// The cursor starts at line 1, column 0. Advancing past a rune moves the
// column to that rune's 1-based column, so right after a rune is consumed the
// cursor names the rune itself. A newline moves to column 0 of the next line.
//
// Lexers that reset the column to 1 on a newline report every rune after the
// first line one column too far right. Resetting to 0 keeps token and error
// columns equal to the rune's real 1-based column on every line, so tokens
// on line 2 and later report one column less than such lexers do.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// StartPosition is the cursor before any rune has been consumed.
func StartPosition() Position {
	return Position{Line: 1, Column: 0}
}

// Advance moves the cursor past r.
func (p *Position) Advance(r rune) {
	if r == '\n' {
		p.Line++
		p.Column = 0
	} else {
		p.Column++
	}
}

// Token is a single lexeme classified by a rule. Line and Column give the
// position of the lexeme's last rune.
type Token[ID comparable] struct {
	ID     ID     `json:"id"`
	Lexeme string `json:"lexeme"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// NewToken creates a token ending at pos.
func NewToken[ID comparable](id ID, lexeme string, pos Position) Token[ID] {
	return Token[ID]{
		ID:     id,
		Lexeme: lexeme,
		Line:   pos.Line,
		Column: pos.Column,
	}
}

// Position returns the position of the token's last rune.
func (t Token[ID]) Position() Position {
	return Position{Line: t.Line, Column: t.Column}
}
