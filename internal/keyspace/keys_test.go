package keyspace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoardKeys(t *testing.T) {
	ns := Board("river-traders")

	assert.Equal(t, "board:river-traders:info", InfoKey("river-traders"))
	assert.Equal(t, "board:river-traders:game:g1", ns.GameKey("g1"))
	assert.Equal(t, "board:river-traders:player:Alice", ns.PlayerKey("Alice"))
	assert.Equal(t, "board:river-traders:profile:Alice", ns.ProfileKey("Alice"))
	assert.False(t, ns.IsLegacy())
	assert.Equal(t, "river-traders", ns.String())
}

func TestLegacyKeys(t *testing.T) {
	ns := Legacy()

	assert.True(t, ns.IsLegacy())
	assert.Equal(t, "game:123", ns.GameKey("123"))
	assert.Equal(t, "player:Alice", ns.PlayerKey("Alice"))
	assert.Equal(t, "profile:Alice", ns.ProfileKey("Alice"))
	assert.Equal(t, "legacy", ns.String())
}

func TestLegacyNeverCollidesWithBoards(t *testing.T) {
	legacy := Legacy()
	board := Board("game")

	keys := []string{
		legacy.GameKey("x"), legacy.PlayerKey("x"), legacy.ProfileKey("x"),
	}
	for _, k := range keys {
		assert.False(t, strings.HasPrefix(k, "board:"), k)
		assert.False(t, strings.HasPrefix(k, BoardPrefix(board.Slug())), k)
	}
}

func TestEveryBoardKeyIsUnderBoardPrefix(t *testing.T) {
	ns := Board("a")
	prefix := BoardPrefix("a")

	for _, k := range []string{InfoKey("a"), ns.GameKey("1"), ns.PlayerKey("p"), ns.ProfileKey("p")} {
		assert.True(t, strings.HasPrefix(k, prefix), k)
	}
}

func TestBoardPrefixesDoNotOverlap(t *testing.T) {
	// "a" must not claim keys of "a-b"
	assert.False(t, strings.HasPrefix(Board("a-b").PlayerKey("p"), BoardPrefix("a")))
	assert.False(t, strings.HasPrefix(InfoKey("a-b"), BoardPrefix("a")))
}

func TestEntityPrefixesAreDistinct(t *testing.T) {
	ns := Board("s")
	prefixes := []string{ns.GamePrefix(), ns.PlayerPrefix(), ns.ProfilePrefix()}

	for i, a := range prefixes {
		assert.False(t, strings.HasPrefix(InfoKey("s"), a))
		for j, b := range prefixes {
			if i != j {
				assert.False(t, strings.HasPrefix(a, b), "%s vs %s", a, b)
			}
		}
	}
}

func TestNameExtraction(t *testing.T) {
	ns := Board("s")

	name, ok := ns.PlayerName(ns.PlayerKey("Bob:the:builder"))
	assert.True(t, ok)
	assert.Equal(t, "Bob:the:builder", name)

	name, ok = ns.ProfileName(ns.ProfileKey("Carol"))
	assert.True(t, ok)
	assert.Equal(t, "Carol", name)

	_, ok = ns.PlayerName(ns.ProfileKey("Carol"))
	assert.False(t, ok)

	_, ok = ns.PlayerName(ns.PlayerPrefix())
	assert.False(t, ok)
}

func TestParseInfoKey(t *testing.T) {
	tests := []struct {
		key  string
		slug string
		ok   bool
	}{
		{"board:river-traders:info", "river-traders", true},
		{"board:a:player:bob:info", "", false},
		{"board::info", "", false},
		{"board:a:game:1", "", false},
		{"player:info", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			slug, ok := ParseInfoKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.slug, slug)
		})
	}
}

func TestPatternEscapesGlobCharacters(t *testing.T) {
	assert.Equal(t, "board:s:player:*", Pattern(Board("s").PlayerPrefix()))
	assert.Equal(t, `board:a\*b:*`, Pattern(BoardPrefix("a*b")))
	assert.Equal(t, "board:*:info", InfoPattern())
}
