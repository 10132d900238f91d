// Package glyph holds the symbols used to mark feed entries in the terminal.
package glyph

import "fmt"

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	underlineCode = 4
)

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

// DefaultGlyphs lists one glyph per feed kind. Key matches the kind name.
func DefaultGlyphs() []Glyph {
	return []Glyph{{
		Key:     "medication",
		Symbol:  "●",
		Meaning: "medication intake",
	}, {
		Key:     "checkin",
		Symbol:  "◐",
		Meaning: "check-in",
	}, {
		Key:     "meal",
		Symbol:  "○",
		Meaning: "meal",
	}, {
		Key:     "sleep",
		Symbol:  "☾",
		Meaning: "morning sleep check",
	}, {
		Key:     "note",
		Symbol:  "⁃",
		Meaning: "note",
	}}
}

// For returns the glyph with the given key, or a plain bullet.
func For(key string) Glyph {
	for _, g := range DefaultGlyphs() {
		if g.Key == key {
			return g
		}
	}
	return Glyph{Key: key, Symbol: "·", Meaning: key}
}
