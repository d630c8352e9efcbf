package key

import "testing"

func TestEventCanonical(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{"lowercase rune", NewRuneEvent('a', ModNone), "a"},
		{"uppercase rune", NewRuneEvent('A', ModNone), "A"},
		{"uppercase with implicit shift", NewRuneEvent('A', ModShift), "A"},
		{"space", NewRuneEvent(' ', ModNone), "<Space>"},
		{"less-than", NewRuneEvent('<', ModNone), "<lt>"},
		{"ctrl rune", NewRuneEvent('r', ModCtrl), "<C-r>"},
		{"ctrl alt rune", NewRuneEvent('x', ModCtrl|ModAlt), "<C-A-x>"},
		{"meta rune", NewRuneEvent('p', ModMeta), "<M-p>"},
		{"ctrl space", NewRuneEvent(' ', ModCtrl), "<C-Space>"},
		{"enter", NewSpecialEvent(KeyEnter, ModNone), "<CR>"},
		{"escape", NewSpecialEvent(KeyEscape, ModNone), "<Esc>"},
		{"shift f1", NewSpecialEvent(KeyF1, ModShift), "<S-F1>"},
		{"ctrl shift f1", NewSpecialEvent(KeyF1, ModCtrl|ModShift), "<C-S-F1>"},
		{"page up", NewSpecialEvent(KeyPageUp, ModNone), "<PageUp>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Canonical(); got != tt.want {
				t.Errorf("Canonical() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	// Parsing a canonical token must yield an event with the same
	// canonical form.
	tokens := []string{
		"a", "A", "<Space>", "<lt>", "<C-r>", "<C-A-x>", "<M-p>",
		"<CR>", "<Esc>", "<Tab>", "<BS>", "<S-F1>", "<PageUp>", "<C-Space>",
	}
	for _, tok := range tokens {
		t.Run(tok, func(t *testing.T) {
			event, err := Parse(tok)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tok, err)
			}
			if got := event.Canonical(); got != tok {
				t.Errorf("Parse(%q).Canonical() = %q", tok, got)
			}
		})
	}
}

func TestEventEqualsIgnoresShiftOnRunes(t *testing.T) {
	// Surfaces differ on whether they report Shift with an uppercase
	// rune; the character itself carries the distinction.
	withShift := NewRuneEvent('A', ModShift)
	withoutShift := NewRuneEvent('A', ModNone)
	if !withShift.Equals(withoutShift) {
		t.Error("rune events differing only in Shift should be equal")
	}

	if NewRuneEvent('a', ModNone).Equals(NewRuneEvent('A', ModNone)) {
		t.Error("distinct runes should not be equal")
	}

	// Shift still distinguishes special keys.
	if NewSpecialEvent(KeyF1, ModShift).Equals(NewSpecialEvent(KeyF1, ModNone)) {
		t.Error("S-F1 should not equal F1")
	}
}

func TestEventPredicates(t *testing.T) {
	if !NewRuneEvent('a', ModNone).IsRune() {
		t.Error("IsRune() = false for rune event")
	}
	if NewSpecialEvent(KeyEnter, ModNone).IsRune() {
		t.Error("IsRune() = true for special event")
	}
	if NewRuneEvent('a', ModCtrl).IsModified() != true {
		t.Error("ctrl rune should be modified")
	}
	if NewRuneEvent('A', ModShift).IsModified() {
		t.Error("shifted rune should not count as modified")
	}
	if !NewSpecialEvent(KeyEscape, ModNone).IsEscape() {
		t.Error("IsEscape() = false for Escape")
	}
}
