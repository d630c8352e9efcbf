package host

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/kstrand/keychord/internal/input/key"
)

// Terminal is a Surface backed by a tcell screen. Key events polled
// from the terminal are translated to canonical key events and
// delivered to the listener. Terminal events are always trusted and
// never part of an IME composition.
type Terminal struct {
	mu       sync.Mutex
	screen   tcell.Screen
	listener Listener
	quit     chan struct{}
	once     sync.Once
}

// NewTerminal creates a terminal surface on a new tcell screen.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen, quit: make(chan struct{})}, nil
}

// NewTerminalWithScreen creates a terminal surface on an existing
// screen. Useful with tcell's SimulationScreen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen, quit: make(chan struct{})}
}

// Init initializes the underlying screen.
func (t *Terminal) Init() error {
	return t.screen.Init()
}

// Fini releases the underlying screen.
func (t *Terminal) Fini() {
	t.screen.Fini()
}

// Screen exposes the underlying tcell screen for drawing.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// AddListener sets the listener, replacing any previous one.
func (t *Terminal) AddListener(l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listener = l
}

// RemoveListener clears the listener.
func (t *Terminal) RemoveListener() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listener = nil
}

// Run polls terminal events until Stop is called, delivering key
// events to the listener. Run blocks; call it from its own goroutine.
func (t *Terminal) Run() {
	for {
		select {
		case <-t.quit:
			return
		default:
		}

		ev := t.screen.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventKey:
			k, ok := TranslateKey(tev)
			if !ok {
				continue
			}
			t.deliver(NewEvent(k))
		case *tcell.EventResize:
			t.screen.Sync()
		case nil:
			return
		}
	}
}

// Stop ends the Run loop.
func (t *Terminal) Stop() {
	t.once.Do(func() {
		close(t.quit)
		// Wake up PollEvent so Run can observe quit.
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
}

func (t *Terminal) deliver(ev *Event) {
	t.mu.Lock()
	l := t.listener
	t.mu.Unlock()
	if l != nil {
		l(ev)
	}
}

// TranslateKey converts a tcell key event into a canonical key event.
// It returns false for events that have no canonical representation,
// which callers must ignore.
func TranslateKey(ev *tcell.EventKey) (key.Event, bool) {
	mods := translateMods(ev.Modifiers())

	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if mods.HasCtrl() {
			r = lowerRune(r)
		}
		return key.NewRuneEvent(r, mods), true
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods), true
	case tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods), true
	case tcell.KeyEsc:
		return key.NewSpecialEvent(key.KeyEscape, mods), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods), true
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods), true
	case tcell.KeyInsert:
		return key.NewSpecialEvent(key.KeyInsert, mods), true
	case tcell.KeyHome:
		return key.NewSpecialEvent(key.KeyHome, mods), true
	case tcell.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd, mods), true
	case tcell.KeyPgUp:
		return key.NewSpecialEvent(key.KeyPageUp, mods), true
	case tcell.KeyPgDn:
		return key.NewSpecialEvent(key.KeyPageDown, mods), true
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods), true
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods), true
	}

	k := ev.Key()
	// Control characters arrive as dedicated key codes; the named
	// ones (Tab, Enter, Backspace, Esc) were handled above.
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		r := rune('a' + int(k-tcell.KeyCtrlA))
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return key.NewSpecialEvent(key.KeyF1+key.Key(k-tcell.KeyF1), mods), true
	}

	return key.Event{}, false
}

func translateMods(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

func lowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
