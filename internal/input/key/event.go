package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event represents a single key press: a key identity plus modifiers.
// Events are value types; two events are equal when key, rune, and
// modifiers match.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{Key: key, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if any modifier is pressed. For character
// events Shift alone is not considered modified, since Shift changes
// the character itself.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Canonical returns the canonical token form of the event: the bare
// character for unmodified printable keys, <...> notation otherwise.
// Examples: "a", "A", "<Space>", "<C-r>", "<CR>", "<C-S-F1>".
//
// Canonical tokens round-trip through Parse, so a literal "<" renders
// as "<lt>".
func (e Event) Canonical() string {
	if e.IsRune() && !e.IsModified() {
		switch e.Rune {
		case ' ':
			return "<Space>"
		case '<':
			return "<lt>"
		}
		return string(e.Rune)
	}

	var parts []string
	if mods := e.Modifiers.tokenString(e.IsRune()); mods != "" {
		parts = append(parts, mods)
	}
	parts = append(parts, e.tokenName())
	return "<" + strings.Join(parts, "-") + ">"
}

// tokenString renders modifiers for canonical notation. Shift is
// omitted for rune keys because the character already encodes it.
func (m Modifier) tokenString(isRune bool) string {
	if isRune {
		m = m.Without(ModShift)
	}
	return m.String()
}

// tokenName returns the key-name portion of a canonical token.
func (e Event) tokenName() string {
	if e.Key == KeyRune {
		switch e.Rune {
		case ' ':
			return "Space"
		case '<':
			return "lt"
		}
		return string(e.Rune)
	}
	if name, ok := canonicalNames[e.Key]; ok {
		return name
	}
	return e.Key.String()
}

// String returns Canonical; Event implements fmt.Stringer.
func (e Event) String() string {
	return e.Canonical()
}

// Equals returns true if two events represent the same key press.
// For character keys Shift is ignored: the character itself encodes
// it, and input surfaces differ on whether they report it.
func (e Event) Equals(other Event) bool {
	if e.Key != other.Key {
		return false
	}
	if e.Key == KeyRune {
		return e.Rune == other.Rune &&
			e.Modifiers.Without(ModShift) == other.Modifiers.Without(ModShift)
	}
	return e.Modifiers == other.Modifiers
}

// IsEscape returns true if this is the Escape key with no modifiers.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}
