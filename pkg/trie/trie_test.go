package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearch(t *testing.T) {
	t.Parallel()

	tr := New()
	tr.Insert("create table")
	tr.Insert("create")
	tr.Insert("(")
	tr.Insert("oo!")

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"empty string is always a prefix", "", true},
		{"exact literal", "create table", true},
		{"proper prefix", "crea", true},
		{"prefix across a space", "create t", true},
		{"single char literal", "(", true},
		{"longer than any literal", "create tables", false},
		{"diverging", "cx", false},
		{"unknown first char", ")", false},
		{"repeated characters", "oo", true},
		{"too many repeats", "ooo", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Search(tt.candidate))
		})
	}
}

func TestInsertIsIdempotent(t *testing.T) {
	t.Parallel()

	tr := New()
	tr.Insert("hello")
	before := tr.Len()
	tr.Insert("hello")
	tr.Insert("hell")
	assert.Equal(t, before, tr.Len())
	assert.Equal(t, 6, tr.Len())
}

func TestInsertEmptyLiteral(t *testing.T) {
	t.Parallel()

	tr := New()
	tr.Insert("")
	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, "", tr.DebugString())
}

func TestMultiByteRunes(t *testing.T) {
	t.Parallel()

	tr := New()
	tr.Insert("größe")
	assert.True(t, tr.Search("grö"))
	assert.False(t, tr.Search("gro"))
	// one node per rune, not per byte
	assert.Equal(t, 6, tr.Len())
}

func TestDebugString(t *testing.T) {
	t.Parallel()

	tr := New()
	tr.Insert("ac")
	tr.Insert("ab")
	tr.Insert("a")
	assert.Equal(t, "a(*b(*)c(*))", tr.DebugString())
}
