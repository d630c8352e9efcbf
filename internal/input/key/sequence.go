package key

import (
	"fmt"
	"strings"
)

// Sequence is an ordered series of key events forming a binding.
// Examples: "gg" (go to top), "diw" (delete inner word), "<C-x><C-s>".
type Sequence struct {
	// Events contains the key events in order.
	Events []Event
}

// NewSequence creates an empty key sequence.
func NewSequence() *Sequence {
	return &Sequence{Events: make([]Event, 0, 4)}
}

// NewSequenceFrom creates a sequence from the given events.
func NewSequenceFrom(events ...Event) *Sequence {
	return &Sequence{Events: events}
}

// Len returns the number of events in the sequence.
func (s *Sequence) Len() int {
	return len(s.Events)
}

// IsEmpty returns true if the sequence has no events.
func (s *Sequence) IsEmpty() bool {
	return len(s.Events) == 0
}

// Add appends an event to the sequence.
func (s *Sequence) Add(event Event) {
	s.Events = append(s.Events, event)
}

// Clear removes all events from the sequence.
func (s *Sequence) Clear() {
	s.Events = s.Events[:0]
}

// Canonical returns the canonical string form: the concatenation of
// each event's canonical token. Examples: "gg", "<C-x><C-s>", "d<CR>".
func (s *Sequence) Canonical() string {
	var sb strings.Builder
	for _, e := range s.Events {
		sb.WriteString(e.Canonical())
	}
	return sb.String()
}

// String returns a human-readable space-separated form.
func (s *Sequence) String() string {
	parts := make([]string, len(s.Events))
	for i, e := range s.Events {
		parts[i] = e.Canonical()
	}
	return strings.Join(parts, " ")
}

// Equals returns true if two sequences are identical.
func (s *Sequence) Equals(other *Sequence) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.EqualsEvents(other.Events)
}

// EqualsEvents returns true if the sequence is exactly the given events.
func (s *Sequence) EqualsEvents(events []Event) bool {
	if len(s.Events) != len(events) {
		return false
	}
	return s.HasPrefix(events)
}

// HasPrefix returns true if this sequence starts with the given events.
// Comparison is token-wise, never on canonical strings: "<F1>" is a
// string prefix of "<F12>" but not a token prefix.
func (s *Sequence) HasPrefix(events []Event) bool {
	if len(events) > len(s.Events) {
		return false
	}
	for i, e := range events {
		if !s.Events[i].Equals(e) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	if s == nil {
		return nil
	}
	events := make([]Event, len(s.Events))
	copy(events, s.Events)
	return &Sequence{Events: events}
}

// TokenError reports a single token of a sequence that failed to
// normalize. Err is one of the per-token sentinel kinds.
type TokenError struct {
	// Token is the raw token text as written.
	Token string
	// Index is the zero-based position of the token in the sequence.
	Index int
	// Err is the underlying error kind.
	Err error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("token %d (%q): %v", e.Index, e.Token, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// Normalize parses a textual key sequence into its canonical form.
// On failure it returns all per-token errors, not only the first; a
// sequence that cannot be tokenized at all yields a single error
// wrapping ErrCannotParse and no per-token errors.
func Normalize(text string) (*Sequence, []error) {
	tokens, err := tokenize(text)
	if err != nil {
		return nil, []error{err}
	}

	seq := NewSequence()
	var errs []error
	for i, tok := range tokens {
		event, err := Parse(tok)
		if err != nil {
			errs = append(errs, &TokenError{Token: tok, Index: i, Err: err})
			continue
		}
		seq.Add(event)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return seq, nil
}

// tokenize splits a sequence string into raw token specs. The string
// is either space-separated ("g g", "d i w") or a continuous Vim-style
// run ("gg", "<C-x><C-s>", "dd").
func tokenize(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty sequence", ErrCannotParse)
	}

	if strings.ContainsAny(text, " \t") {
		return strings.Fields(text), nil
	}

	var tokens []string
	runes := []rune(text)
	for i := 0; i < len(runes); {
		if runes[i] == '<' {
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '>' {
					end = j
					break
				}
			}
			if end == -1 {
				return nil, fmt.Errorf("%w: unclosed %q at position %d", ErrCannotParse, '<', i)
			}
			tokens = append(tokens, string(runes[i:end+1]))
			i = end + 1
			continue
		}
		tokens = append(tokens, string(runes[i]))
		i++
	}

	return tokens, nil
}

// ParseSequence parses a key sequence string, returning the first
// error encountered. Prefer Normalize when the full error report is
// needed.
func ParseSequence(text string) (*Sequence, error) {
	seq, errs := Normalize(text)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return seq, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(text string) *Sequence {
	seq, err := ParseSequence(text)
	if err != nil {
		panic("invalid key sequence: " + text + ": " + err.Error())
	}
	return seq
}
