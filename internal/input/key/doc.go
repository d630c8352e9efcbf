// Package key provides key event types and Vim-style notation parsing.
//
// The package defines the fundamental types for representing keyboard
// input:
//
//   - Key: identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: a single key press with modifiers
//   - Sequence: an ordered series of key events forming a binding
//
// # Notation
//
// Key tokens can be written in several formats:
//
//   - Simple keys: "a", "A", "1", "Enter", "Escape"
//   - With modifiers: "Ctrl+S", "Alt+F4"
//   - Vim-style: "<C-s>", "<A-f>", "<CR>", "<Esc>"
//
// Every token has exactly one canonical form (Event.Canonical): the
// bare character for unmodified printable keys, <...> notation for
// everything else. Binding tables key on the canonical form of a whole
// sequence (Sequence.Canonical).
//
// # Normalization
//
// Normalize validates a textual sequence and reports all invalid
// tokens at once, distinguishing unparsable sequences from per-token
// problems (invalid key, unknown modifier, duplicate modifier,
// disallowed modifier combination).
package key
