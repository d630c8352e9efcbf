package teahost

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kstrand/keychord/internal/input/key"
)

func TestFromKeyMsg(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want key.Event
	}{
		{
			"rune",
			tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}},
			key.NewRuneEvent('a', key.ModNone),
		},
		{
			"alt rune",
			tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}, Alt: true},
			key.NewRuneEvent('f', key.ModAlt),
		},
		{
			"space",
			tea.KeyMsg{Type: tea.KeySpace},
			key.NewRuneEvent(' ', key.ModNone),
		},
		{
			"ctrl chord",
			tea.KeyMsg{Type: tea.KeyCtrlX},
			key.NewRuneEvent('x', key.ModCtrl),
		},
		{
			"enter",
			tea.KeyMsg{Type: tea.KeyEnter},
			key.NewSpecialEvent(key.KeyEnter, key.ModNone),
		},
		{
			"escape",
			tea.KeyMsg{Type: tea.KeyEsc},
			key.NewSpecialEvent(key.KeyEscape, key.ModNone),
		},
		{
			"shift tab",
			tea.KeyMsg{Type: tea.KeyShiftTab},
			key.NewSpecialEvent(key.KeyTab, key.ModShift),
		},
		{
			"f1",
			tea.KeyMsg{Type: tea.KeyF1},
			key.NewSpecialEvent(key.KeyF1, key.ModNone),
		},
		{
			"f12",
			tea.KeyMsg{Type: tea.KeyF12},
			key.NewSpecialEvent(key.KeyF12, key.ModNone),
		},
		{
			"arrow",
			tea.KeyMsg{Type: tea.KeyDown},
			key.NewSpecialEvent(key.KeyDown, key.ModNone),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := FromKeyMsg(tt.msg)
			if !ok {
				t.Fatal("FromKeyMsg returned false")
			}
			if !ev.Key.Equals(tt.want) {
				t.Errorf("FromKeyMsg = %#v, want %#v", ev.Key, tt.want)
			}
			if !ev.Trusted {
				t.Error("translated events should be trusted")
			}
		})
	}
}

func TestFromKeyMsgRejected(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Paste: true}},
		{"multi-rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a', 'b'}}},
		{"empty runes", tea.KeyMsg{Type: tea.KeyRunes}},
		{"f13", tea.KeyMsg{Type: tea.KeyF13}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := FromKeyMsg(tt.msg); ok {
				t.Error("FromKeyMsg should reject this message")
			}
		})
	}
}
