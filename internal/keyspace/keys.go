// Package keyspace is the single source of truth for how board data is laid
// out in the key-value store.
//
// Every board owns the prefix "board:{slug}:". Below it live
//
//	board:{slug}:info            board record
//	board:{slug}:game:{id}       immutable game records
//	board:{slug}:player:{name}   player aggregate hash
//	board:{slug}:profile:{name}  profile asset url
//
// The legacy single-board deployment used the same entity layout without the
// board prefix ("game:{id}", "player:{name}", "profile:{name}"). No legacy key
// starts with "board:", so the two namespaces never overlap.
package keyspace

import (
	"strings"
)

const (
	boardRoot = "board"
	sep       = ":"

	kindInfo    = "info"
	kindGame    = "game"
	kindPlayer  = "player"
	kindProfile = "profile"
)

// Namespace scopes entity keys either to one board or to the legacy namespace
type Namespace struct {
	slug string
}

// Board returns the namespace of the board with the given slug
func Board(slug string) Namespace {
	return Namespace{slug: slug}
}

// Legacy returns the ungrouped namespace of the original single-board deployment
func Legacy() Namespace {
	return Namespace{}
}

// IsLegacy reports whether this is the ungrouped namespace
func (n Namespace) IsLegacy() bool {
	return n.slug == ""
}

// Slug returns the board slug, empty for the legacy namespace
func (n Namespace) Slug() string {
	return n.slug
}

// String is used for logging
func (n Namespace) String() string {
	if n.IsLegacy() {
		return "legacy"
	}
	return n.slug
}

// root is the prefix shared by every key in the namespace
func (n Namespace) root() string {
	if n.IsLegacy() {
		return ""
	}
	return BoardPrefix(n.slug)
}

// GamePrefix is the prefix shared by all game records in the namespace
func (n Namespace) GamePrefix() string {
	return n.root() + kindGame + sep
}

// GameKey returns the key of one game record
func (n Namespace) GameKey(id string) string {
	return n.GamePrefix() + id
}

// PlayerPrefix is the prefix shared by all player aggregates in the namespace
func (n Namespace) PlayerPrefix() string {
	return n.root() + kindPlayer + sep
}

// PlayerKey returns the key of one player's aggregate hash
func (n Namespace) PlayerKey(name string) string {
	return n.PlayerPrefix() + name
}

// PlayerName extracts the player name from an aggregate key
func (n Namespace) PlayerName(key string) (string, bool) {
	return cut(key, n.PlayerPrefix())
}

// ProfilePrefix is the prefix shared by all profile links in the namespace
func (n Namespace) ProfilePrefix() string {
	return n.root() + kindProfile + sep
}

// ProfileKey returns the key of one player's profile link
func (n Namespace) ProfileKey(name string) string {
	return n.ProfilePrefix() + name
}

// ProfileName extracts the player name from a profile key
func (n Namespace) ProfileName(key string) (string, bool) {
	return cut(key, n.ProfilePrefix())
}

// BoardPrefix is the prefix of every key owned by a board, its info key included
func BoardPrefix(slug string) string {
	return boardRoot + sep + slug + sep
}

// InfoKey returns the key of the board record
func InfoKey(slug string) string {
	return BoardPrefix(slug) + kindInfo
}

// InfoPattern matches every board record. Player or profile names ending in
// ":info" also match it, so results must be filtered through ParseInfoKey.
func InfoPattern() string {
	return boardRoot + sep + "*" + sep + kindInfo
}

// ParseInfoKey returns the slug of a board record key. It rejects entity keys
// that merely happen to end in ":info".
func ParseInfoKey(key string) (string, bool) {
	rest, ok := cut(key, boardRoot+sep)
	if !ok {
		return "", false
	}
	slug, ok := strings.CutSuffix(rest, sep+kindInfo)
	if !ok || slug == "" || strings.Contains(slug, sep) {
		return "", false
	}
	return slug, true
}

// Pattern turns a key prefix into a store glob matching everything under it
func Pattern(prefix string) string {
	return escapeGlob(prefix) + "*"
}

func cut(key, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(key, prefix)
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

var globEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
)

func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}
