package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse and normalization errors. ErrCannotParse is sequence-level:
// the text could not be tokenized at all. The remaining kinds are
// per-token and matchable with errors.Is.
var (
	ErrCannotParse        = errors.New("cannot parse key sequence")
	ErrEmptySpec          = errors.New("empty key specification")
	ErrInvalidKey         = errors.New("invalid key")
	ErrUnknownModifier    = errors.New("unknown modifier")
	ErrDuplicateModifier  = errors.New("duplicate modifier")
	ErrDisallowedModifier = errors.New("disallowed modifier combination")
)

// Parse parses a single key token into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Special keys: "Enter", "Escape", "Tab", "Space"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+P"
//   - Vim-style: "<C-s>", "<A-f>", "<C-S-F1>", "<CR>", "<Esc>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseBracketed(spec[1 : len(spec)-1])
	}

	if strings.Contains(spec, "+") && len(spec) > 1 {
		return parsePlusStyle(spec)
	}

	return parseBare(spec)
}

// MustParse parses a key token and panics on error. Use only for
// known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}

// parseBracketed parses the inside of Vim-style <...> notation:
// "C-s", "A-F4", "CR", "Esc", "C--".
func parseBracketed(inner string) (Event, error) {
	if inner == "" {
		return Event{}, fmt.Errorf("%w: empty token", ErrInvalidKey)
	}

	parts := strings.Split(inner, "-")
	keyPart := parts[len(parts)-1]
	modNames := parts[:len(parts)-1]

	// A trailing hyphen is the key itself, as in <C-->.
	if keyPart == "" && len(parts) >= 2 {
		keyPart = "-"
		modNames = parts[:len(parts)-2]
	}

	mods, err := parseModifierNames(modNames)
	if err != nil {
		return Event{}, err
	}

	return resolveKey(keyPart, mods)
}

// parsePlusStyle parses "Ctrl+S" style notation.
func parsePlusStyle(spec string) (Event, error) {
	parts := strings.Split(spec, "+")
	keyPart := parts[len(parts)-1]
	modNames := parts[:len(parts)-1]

	// A trailing plus is the key itself, as in "Ctrl++".
	if keyPart == "" && len(parts) >= 2 {
		keyPart = "+"
		modNames = parts[:len(parts)-2]
	}

	mods, err := parseModifierNames(modNames)
	if err != nil {
		return Event{}, err
	}

	return resolveKey(keyPart, mods)
}

// parseModifierNames resolves a list of modifier names, rejecting
// unknown names and duplicates.
func parseModifierNames(names []string) (Modifier, error) {
	var mods Modifier
	for _, name := range names {
		name = strings.TrimSpace(name)
		mod := ModifierFromName(name)
		if mod == ModNone {
			return ModNone, fmt.Errorf("%w: %q", ErrUnknownModifier, name)
		}
		if mods.Has(mod) {
			return ModNone, fmt.Errorf("%w: %q", ErrDuplicateModifier, name)
		}
		mods = mods.With(mod)
	}
	return mods, nil
}

// parseBare parses a token with no notation markers: a key name or a
// single character. Uppercase letters carry an implicit Shift.
func parseBare(spec string) (Event, error) {
	if k := FromName(spec); k != KeyNone {
		return NewSpecialEvent(k, ModNone), nil
	}

	if r, ok := runeAliases[strings.ToLower(spec)]; ok {
		return NewRuneEvent(r, ModNone), nil
	}

	if r, size := utf8.DecodeRuneInString(spec); size == len(spec) && r != utf8.RuneError {
		var mods Modifier
		if unicode.IsUpper(r) {
			mods = ModShift
		}
		return NewRuneEvent(r, mods), nil
	}

	return Event{}, fmt.Errorf("%w: %q", ErrInvalidKey, spec)
}

// runeAliases are names for characters that cannot appear literally
// inside <...> notation.
var runeAliases = map[string]rune{
	"space":  ' ',
	"lt":     '<',
	"gt":     '>',
	"bar":    '|',
	"bslash": '\\',
	"minus":  '-',
}

// resolveKey turns a key-name part plus already-parsed modifiers into
// an Event, enforcing modifier validity for the resolved key.
func resolveKey(keyPart string, mods Modifier) (Event, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Event{}, fmt.Errorf("%w: missing key", ErrInvalidKey)
	}

	lower := strings.ToLower(keyPart)

	if r, ok := runeAliases[lower]; ok {
		return newModifiedRune(r, mods)
	}

	if k := FromName(lower); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	if r, size := utf8.DecodeRuneInString(keyPart); size == len(keyPart) && r != utf8.RuneError {
		return newModifiedRune(r, mods)
	}

	return Event{}, fmt.Errorf("%w: %q", ErrInvalidKey, keyPart)
}

// newModifiedRune builds a rune event under modifiers. An explicit
// Shift on a character key is disallowed: the character itself already
// encodes Shift ("A", not "<S-a>"). Ctrl combinations normalize the
// character to lowercase.
func newModifiedRune(r rune, mods Modifier) (Event, error) {
	if mods.HasShift() {
		return Event{}, fmt.Errorf("%w: Shift on character %q", ErrDisallowedModifier, r)
	}
	if mods.HasCtrl() {
		r = unicode.ToLower(r)
	}
	return NewRuneEvent(r, mods), nil
}
