package host

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kstrand/keychord/internal/input/key"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Event
	}{
		{
			"plain rune",
			tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone),
			key.NewRuneEvent('a', key.ModNone),
		},
		{
			"uppercase rune",
			tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModNone),
			key.NewRuneEvent('G', key.ModNone),
		},
		{
			"alt rune",
			tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModAlt),
			key.NewRuneEvent('f', key.ModAlt),
		},
		{
			"ctrl key code",
			tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl),
			key.NewRuneEvent('x', key.ModCtrl),
		},
		{
			"enter",
			tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
			key.NewSpecialEvent(key.KeyEnter, key.ModNone),
		},
		{
			"escape",
			tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone),
			key.NewSpecialEvent(key.KeyEscape, key.ModNone),
		},
		{
			"backspace2 maps to backspace",
			tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone),
			key.NewSpecialEvent(key.KeyBackspace, key.ModNone),
		},
		{
			"f1",
			tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone),
			key.NewSpecialEvent(key.KeyF1, key.ModNone),
		},
		{
			"f12",
			tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone),
			key.NewSpecialEvent(key.KeyF12, key.ModNone),
		},
		{
			"shift f1",
			tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModShift),
			key.NewSpecialEvent(key.KeyF1, key.ModShift),
		},
		{
			"page up",
			tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone),
			key.NewSpecialEvent(key.KeyPageUp, key.ModNone),
		},
		{
			"arrow",
			tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone),
			key.NewSpecialEvent(key.KeyUp, key.ModNone),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TranslateKey(tt.ev)
			if !ok {
				t.Fatalf("TranslateKey returned false")
			}
			if !got.Equals(tt.want) {
				t.Errorf("TranslateKey = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTranslateKeyCtrlRuneLowercases(t *testing.T) {
	// Some terminals report Ctrl chords as a rune with the modifier
	// set; the rune must land lowercase so it matches <C-x> bindings.
	ev := tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModCtrl)
	got, ok := TranslateKey(ev)
	if !ok {
		t.Fatal("TranslateKey returned false")
	}
	if want := key.NewRuneEvent('x', key.ModCtrl); !got.Equals(want) {
		t.Errorf("TranslateKey = %#v, want %#v", got, want)
	}
}

func TestTranslateKeyUnrepresentable(t *testing.T) {
	if _, ok := TranslateKey(tcell.NewEventKey(tcell.KeyF13, 0, tcell.ModNone)); ok {
		t.Error("F13 has no canonical form and should be rejected")
	}
}

func TestEventFlags(t *testing.T) {
	ev := NewEvent(key.NewRuneEvent('a', key.ModNone))
	if !ev.Trusted {
		t.Error("NewEvent should produce a trusted event")
	}
	if ev.DefaultPrevented() || ev.PropagationStopped() {
		t.Error("flags should start clear")
	}

	ev.PreventDefault()
	ev.StopPropagation()
	if !ev.DefaultPrevented() {
		t.Error("DefaultPrevented() = false after PreventDefault")
	}
	if !ev.PropagationStopped() {
		t.Error("PropagationStopped() = false after StopPropagation")
	}
}

func TestTerminalDeliversToListener(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()

	term := NewTerminalWithScreen(screen)

	got := make(chan *Event, 1)
	term.AddListener(func(ev *Event) {
		select {
		case got <- ev:
		default:
		}
	})

	go term.Run()
	defer term.Stop()

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)

	ev := <-got
	if want := key.NewRuneEvent('x', key.ModNone); !ev.Key.Equals(want) {
		t.Errorf("delivered key = %#v, want %#v", ev.Key, want)
	}
	if !ev.Trusted || ev.Composing {
		t.Error("terminal events should be trusted and non-composing")
	}
}
