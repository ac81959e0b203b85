package generator

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternRulesFallback(t *testing.T) {
	t.Parallel()

	b := NewBuilder[tokenID]()
	b.DefineCollections([]Collection[tokenID]{{ID: idAlphabet, Chars: alphabet}})
	require.NoError(t, b.DefinePatternRule(idDigit, unicode.IsDigit, false))
	require.NoError(t, b.DefinePatternRule(idWhitespace, unicode.IsSpace, true))
	require.NoError(t, b.DefinePatternRegex(idSymbol, `[^a-z0-9\s]`, false))

	tokens, err := b.Build().Scan("a7 +\tb")
	require.NoError(t, err)
	assert.Equal(t, []Token[tokenID]{
		tok(idAlphabet, "a", 1, 1),
		tok(idDigit, "7", 1, 2),
		tok(idSymbol, "+", 1, 4),
		tok(idAlphabet, "b", 1, 6),
	}, tokens)
}

func TestPatternRulesFirstMatchWins(t *testing.T) {
	t.Parallel()

	b := NewBuilder[tokenID]()
	require.NoError(t, b.DefinePatternRule(idShort, unicode.IsLetter, false))
	require.NoError(t, b.DefinePatternRule(idLong, unicode.IsLetter, false))
	g := b.Build()

	id, class := g.Classify('x')
	assert.Equal(t, idShort, id)
	assert.Equal(t, Matched, class)

	_, class = g.Classify('1')
	assert.Equal(t, Unmatched, class)
}

func TestPatternRulesDoNotOverrideLiterals(t *testing.T) {
	t.Parallel()

	b := NewBuilder[tokenID]()
	b.DefineCollections([]Collection[tokenID]{{ID: idAlphabet, Chars: "a"}})
	require.NoError(t, b.DefinePatternRule(idSymbol, unicode.IsLetter, false))

	tokens, err := b.Build().Scan("ab")
	require.NoError(t, err)
	assert.Equal(t, []Token[tokenID]{
		tok(idAlphabet, "a", 1, 1),
		tok(idSymbol, "b", 1, 2),
	}, tokens)
}

func TestPatternRegexMustMatchWholeCharacter(t *testing.T) {
	t.Parallel()

	b := NewBuilder[tokenID]()
	require.NoError(t, b.DefinePatternRegex(idDigit, `[0-9]|x`, false))
	g := b.Build()

	_, class := g.Classify('x')
	assert.Equal(t, Matched, class)
	_, class = g.Classify('y')
	assert.Equal(t, Unmatched, class)
}

func TestPatternRuleRejectsNilPredicate(t *testing.T) {
	t.Parallel()

	b := NewBuilder[tokenID]()
	err := b.DefinePatternRule(idSymbol, nil, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPattern)

	// nothing was registered, so scanning reports the character instead of panicking
	_, err = b.Build().Scan("x")
	var lexErr *LexicalError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, "x", lexErr.Text)
}

func TestPatternRegexInvalid(t *testing.T) {
	t.Parallel()

	b := NewBuilder[tokenID]()
	err := b.DefinePatternRegex(idDigit, `[0-9`, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestClassificationString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "matched", Matched.String())
	assert.Equal(t, "ignored", Ignored.String())
	assert.Equal(t, "unmatched", Unmatched.String())
}

func TestRepass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		concat   func(b *Builder[tokenID]) error
		source   string
		expected []Token[tokenID]
	}{
		{
			name: "single character run is left alone",
			concat: func(b *Builder[tokenID]) error {
				return b.DefineConcat(idAlphabet, idWord)
			},
			source: "a 1 bc",
			expected: []Token[tokenID]{
				tok(idAlphabet, "a", 1, 1),
				tok(idDigit, "1", 1, 3),
				tok(idWord, "bc", 1, 6),
			},
		},
		{
			name: "run broken by another concat id",
			concat: func(b *Builder[tokenID]) error {
				if err := b.DefineConcat(idAlphabet, idWord); err != nil {
					return err
				}
				return b.DefineConcat(idDigit, idNumber)
			},
			source: "ab12c",
			expected: []Token[tokenID]{
				tok(idWord, "ab", 1, 2),
				tok(idNumber, "12", 1, 4),
				tok(idAlphabet, "c", 1, 5),
			},
		},
		{
			name: "transition defaults to the id itself",
			concat: func(b *Builder[tokenID]) error {
				return b.DefineConcat(idAlphabet)
			},
			source: "abc",
			expected: []Token[tokenID]{
				tok(idAlphabet, "abc", 1, 3),
			},
		},
		{
			name: "merged position is the last fragment",
			concat: func(b *Builder[tokenID]) error {
				return b.DefineConcat(idDigit, idNumber)
			},
			source: "x\n42",
			expected: []Token[tokenID]{
				tok(idAlphabet, "x", 1, 1),
				tok(idNumber, "42", 2, 2),
			},
		},
		{
			name: "runs span ignored input",
			concat: func(b *Builder[tokenID]) error {
				return b.DefineConcat(idAlphabet, idWord)
			},
			source: "ab cd",
			expected: []Token[tokenID]{
				tok(idWord, "abcd", 1, 5),
			},
		},
		{
			name: "no concat rules leaves the stream untouched",
			concat: func(b *Builder[tokenID]) error {
				return nil
			},
			source: "ab",
			expected: []Token[tokenID]{
				tok(idAlphabet, "a", 1, 1),
				tok(idAlphabet, "b", 1, 2),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder[tokenID]()
			b.DefineCollections([]Collection[tokenID]{
				{ID: idAlphabet, Chars: alphabet},
				{ID: idDigit, Chars: digits},
				{ID: idWhitespace, Chars: " \n", Ignore: true},
			})
			require.NoError(t, tt.concat(b))

			tokens, err := b.Build().Scan(tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestRepassMultiCharacterLiteral(t *testing.T) {
	t.Parallel()

	b := NewBuilder[tokenID]()
	b.DefineRule(idHello, "hi", false)
	b.DefineCollections([]Collection[tokenID]{{ID: idAlphabet, Chars: alphabet}})
	require.NoError(t, b.DefineConcat(idHello, idGreeting))

	// a lone token longer than one character is still relabelled
	tokens, err := b.Build().Scan("hi")
	require.NoError(t, err)
	assert.Equal(t, []Token[tokenID]{tok(idGreeting, "hi", 1, 2)}, tokens)
}

func TestConstruct(t *testing.T) {
	t.Parallel()

	b := NewBuilder[tokenID]()
	b.DefineRule(idHello, "hello", false)
	b.DefineCollections([]Collection[tokenID]{
		{ID: idAlphabet, Chars: alphabet},
		{ID: idWhitespace, Chars: " ", Ignore: true},
	})
	require.NoError(t, b.DefineConstruct(idGreeting,
		TokenStep(idHello),
		TextStep[tokenID](" world"),
	))

	tokens, err := b.Build().Scan("Hello World")
	require.NoError(t, err)
	assert.Equal(t, []Token[tokenID]{tok(idGreeting, "hello world", 1, 11)}, tokens)
}

func TestConstructErrors(t *testing.T) {
	t.Parallel()

	b := NewBuilder[tokenID]()
	b.DefineRule(idHello, "hello", false)
	b.DefineCollections([]Collection[tokenID]{{ID: idAlphabet, Chars: alphabet}})

	tests := []struct {
		name  string
		steps []ConstructStep[tokenID]
	}{
		{"too few steps", []ConstructStep[tokenID]{TokenStep(idHello)}},
		{"unknown id", []ConstructStep[tokenID]{TokenStep(idHow), TextStep[tokenID]("x")}},
		{"ambiguous id", []ConstructStep[tokenID]{TokenStep(idAlphabet), TextStep[tokenID]("x")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.DefineConstruct(idGreeting, tt.steps...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConstruct)
		})
	}
}

func TestConstructFollowsLaterCaseMode(t *testing.T) {
	t.Parallel()

	g := New[tokenID]()
	g.DefineRule(idHello, "Hello", false)
	g.DefineCollections([]Collection[tokenID]{{ID: idAlphabet, Chars: alphabet + "ABCDEFGHIJKLMNOPQRSTUVWXYZ"}})
	require.NoError(t, g.DefineConstruct(idGreeting,
		TokenStep(idHello),
		TextStep[tokenID](" World"),
	))

	g.SetSource("Hello World", true)
	require.NoError(t, g.Tokenize())
	assert.Equal(t, []Token[tokenID]{tok(idGreeting, "Hello World", 1, 11)}, g.Tokens())
}

func TestConstructInvalidatedByCaseMode(t *testing.T) {
	t.Parallel()

	// both spellings fold to one literal, but stay distinct once case matters
	g := New[tokenID]()
	g.DefineRule(idHello, "Hi", false)
	g.DefineRule(idHello, "hi", false)
	require.NoError(t, g.DefineConstruct(idGreeting,
		TokenStep(idHello),
		TextStep[tokenID](" there"),
	))
	require.NoError(t, g.Validate())

	g.SetSource("hi there", true)
	err := g.Tokenize()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConstruct)
	assert.Empty(t, g.Tokens())
}
