// Package teahost adapts Bubble Tea key messages for the binder, so
// tea programs can feed key input into keychord from their Update
// function.
package teahost

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kstrand/keychord/internal/host"
	"github.com/kstrand/keychord/internal/input/key"
)

// FromKeyMsg converts a Bubble Tea key message into a host event.
// It returns false for messages with no canonical representation
// (pastes, multi-rune input, unmapped keys), which callers must skip.
func FromKeyMsg(msg tea.KeyMsg) (*host.Event, bool) {
	k, ok := translate(tea.Key(msg))
	if !ok {
		return nil, false
	}
	return host.NewEvent(k), true
}

func translate(k tea.Key) (key.Event, bool) {
	var mods key.Modifier
	if k.Alt {
		mods = mods.With(key.ModAlt)
	}

	switch k.Type {
	case tea.KeyRunes:
		if k.Paste || len(k.Runes) != 1 {
			return key.Event{}, false
		}
		return key.NewRuneEvent(k.Runes[0], mods), true
	case tea.KeySpace:
		return key.NewRuneEvent(' ', mods), true
	case tea.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods), true
	case tea.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods), true
	case tea.KeyShiftTab:
		return key.NewSpecialEvent(key.KeyTab, mods.With(key.ModShift)), true
	case tea.KeyEsc:
		return key.NewSpecialEvent(key.KeyEscape, mods), true
	case tea.KeyBackspace:
		return key.NewSpecialEvent(key.KeyBackspace, mods), true
	case tea.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods), true
	case tea.KeyHome:
		return key.NewSpecialEvent(key.KeyHome, mods), true
	case tea.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd, mods), true
	case tea.KeyPgUp:
		return key.NewSpecialEvent(key.KeyPageUp, mods), true
	case tea.KeyPgDown:
		return key.NewSpecialEvent(key.KeyPageDown, mods), true
	case tea.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods), true
	case tea.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods), true
	case tea.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods), true
	case tea.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods), true
	}

	// Control characters share the ASCII range; Tab, Enter, and the
	// like were handled above.
	if k.Type >= tea.KeyCtrlA && k.Type <= tea.KeyCtrlZ {
		r := rune('a' + int(k.Type-tea.KeyCtrlA))
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
	}
	// Special key constants are negative and descending, so F1 is the
	// largest of the function-key range.
	if k.Type <= tea.KeyF1 && k.Type >= tea.KeyF12 {
		return key.NewSpecialEvent(key.KeyF1+key.Key(tea.KeyF1-k.Type), mods), true
	}

	return key.Event{}, false
}
