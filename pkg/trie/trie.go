// Package trie implements the prefix index used by the generator to decide
// whether a candidate string can still grow into a registered literal.
//
// Nodes are kept in a single arena slice and refer to their children by
// index. Each node stores its outgoing edges as a small slice sorted by rune,
// which keeps lookups on the hot path free of map hashing and keeps related
// nodes close together in memory.
package trie

import (
	"sort"
	"strings"
)

// NodeIndex is the position of a node in the arena.
type NodeIndex int

const root NodeIndex = 0

// edge links a node to one of its children.
type edge struct {
	char  rune
	child NodeIndex
}

type node struct {
	// edges is sorted by char.
	edges []edge
	// isEnd marks the last rune of an inserted literal.
	isEnd bool
}

// Trie is a prefix tree over runes.
type Trie struct {
	nodes []node
}

// New returns an empty trie holding only the root node.
func New() *Trie {
	t := &Trie{
		nodes: make([]node, 0, 64),
	}
	t.nodes = append(t.nodes, node{})
	return t
}

// newNode appends a fresh node to the arena and returns its index.
func (t *Trie) newNode() NodeIndex {
	idx := NodeIndex(len(t.nodes))
	t.nodes = append(t.nodes, node{})
	return idx
}

// child returns the index of n's child reached through char.
func (t *Trie) child(n NodeIndex, char rune) (NodeIndex, bool) {
	edges := t.nodes[n].edges
	i := sort.Search(len(edges), func(i int) bool { return edges[i].char >= char })
	if i < len(edges) && edges[i].char == char {
		return edges[i].child, true
	}
	return 0, false
}

// addChild creates the child of n for char, keeping the edges sorted.
func (t *Trie) addChild(n NodeIndex, char rune) NodeIndex {
	idx := t.newNode()
	edges := t.nodes[n].edges
	i := sort.Search(len(edges), func(i int) bool { return edges[i].char >= char })
	edges = append(edges, edge{})
	copy(edges[i+1:], edges[i:])
	edges[i] = edge{char: char, child: idx}
	t.nodes[n].edges = edges
	return idx
}

// Insert adds every prefix of literal as a path from the root.
// Inserting the same literal twice leaves the trie unchanged.
func (t *Trie) Insert(literal string) {
	if literal == "" {
		return
	}

	current := root
	for _, char := range literal {
		next, ok := t.child(current, char)
		if !ok {
			next = t.addChild(current, char)
		}
		current = next
	}
	t.nodes[current].isEnd = true
}

// Search reports whether candidate is a prefix of, or equal to, some
// inserted literal. The empty string is a prefix of everything.
func (t *Trie) Search(candidate string) bool {
	current := root
	for _, char := range candidate {
		next, ok := t.child(current, char)
		if !ok {
			return false
		}
		current = next
	}
	return true
}

// Len returns the number of nodes, root included.
func (t *Trie) Len() int {
	return len(t.nodes)
}

// DebugString renders the trie as nested groups, e.g. "a(b(*)c(*))" for
// the literals "ab" and "ac". A '*' marks the end of a literal.
func (t *Trie) DebugString() string {
	var sb strings.Builder
	t.debugStringNode(&sb, root)
	return sb.String()
}

func (t *Trie) debugStringNode(sb *strings.Builder, idx NodeIndex) {
	n := t.nodes[idx]
	if n.isEnd {
		sb.WriteString("*")
	}
	for _, e := range n.edges {
		sb.WriteRune(e.char)
		sb.WriteString("(")
		t.debugStringNode(sb, e.child)
		sb.WriteString(")")
	}
}
