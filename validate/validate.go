// Package validate checks the shape of client-supplied identifiers before
// they are used as map keys or echoed back in broadcasts. Room ids and
// player names are client-asserted and otherwise trusted, so the checks
// here are deliberately loose: length caps plus a printable-rune rule.
package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxRoomIDLen caps room identifier length.
	MaxRoomIDLen = 64
	// MaxPlayerNameLen caps display name length.
	MaxPlayerNameLen = 32
	// MaxChatLen caps a single chat message.
	MaxChatLen = 500
)

// RoomID reports whether s is usable as a room key: non-empty, within the
// length cap, valid UTF-8, and free of control characters and spaces.
func RoomID(s string) bool {
	if s == "" || len(s) > MaxRoomIDLen || !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// PlayerName reports whether s is an acceptable display name: non-blank,
// within the length cap, valid UTF-8, and free of control characters.
// Interior spaces are allowed.
func PlayerName(s string) bool {
	if strings.TrimSpace(s) == "" || len(s) > MaxPlayerNameLen || !utf8.ValidString(s) {
		return false
	}
	return printable(s)
}

// ChatMessage reports whether s may be appended to a chat log.
func ChatMessage(s string) bool {
	if s == "" || len(s) > MaxChatLen || !utf8.ValidString(s) {
		return false
	}
	return printable(s)
}

func printable(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
