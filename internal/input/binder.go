package input

import (
	"sync"
	"time"

	"github.com/kstrand/keychord/internal/host"
	"github.com/kstrand/keychord/internal/input/key"
	"github.com/kstrand/keychord/internal/input/keymap"
	"github.com/kstrand/keychord/internal/logging"
)

// Binder attaches key-sequence bindings to an input surface and
// resolves prefix ambiguity between them. It owns a binding table, the
// match state for one surface, and the flush timer.
//
// Commands, and the sequence-change callback, run synchronously on the
// goroutine delivering the event (or on the flush timer goroutine) and
// must not call back into the Binder or its table.
type Binder struct {
	mu  sync.Mutex
	cfg Config
	log *logging.Logger

	table   *keymap.Table
	surface host.Surface

	listening bool
	closed    bool

	// Match state. buf is the current sequence buffer; candidates are
	// the bound sequences still consistent with it; best holds the
	// command for the sequence exactly matching buf while it is still
	// a live candidate.
	buf        []key.Event
	bufCanon   string
	candidates map[string]candidate
	best       *pendingMatch

	flushTimer *time.Timer
	flushGen   uint64

	onSequence func(string)
}

type candidate struct {
	seq *key.Sequence
	cmd keymap.Command
}

type pendingMatch struct {
	cmd keymap.Command
	ev  *host.Event
}

// New creates a Binder. A nil logger disables logging.
func New(cfg Config, logger *logging.Logger) *Binder {
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = DefaultFlushInterval
	}
	if logger == nil {
		logger = logging.Nop
	}

	b := &Binder{
		cfg:        cfg,
		log:        logger.WithComponent("input"),
		table:      keymap.NewTable(),
		candidates: make(map[string]candidate),
	}
	b.table.OnChange(b.reconcile)
	return b
}

// Table returns the binder's binding table.
func (b *Binder) Table() *keymap.Table {
	return b.table
}

// Bind binds one sequence to a command. The report is empty on success.
func (b *Binder) Bind(spec string, cmd keymap.Command) keymap.Report {
	return b.table.Bind(spec, cmd)
}

// BindAll binds a batch of sequences; see keymap.Table.BindAll.
func (b *Binder) BindAll(specs map[string]keymap.Command) keymap.Report {
	return b.table.BindAll(specs)
}

// Unbind removes sequences, ignoring ones that fail to normalize.
func (b *Binder) Unbind(specs ...string) {
	b.table.Unbind(specs...)
}

// Reset clears every binding.
func (b *Binder) Reset() {
	b.table.Reset()
}

// Buffer returns the canonical form of the current sequence buffer.
func (b *Binder) Buffer() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bufCanon
}

// OnSequenceChange sets a callback invoked whenever the buffer changes
// value, including back to empty.
func (b *Binder) OnSequenceChange(fn func(buffer string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onSequence = fn
}

// AttachSurface connects the binder to an input surface. The binder
// listens only while the table is non-empty.
func (b *Binder) AttachSurface(s host.Surface) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listening && b.surface != nil {
		b.surface.RemoveListener()
		b.listening = false
	}
	b.surface = s
	b.updateListeningLocked()
}

// reconcile runs after every table mutation: the match state is forced
// back to idle against the new table contents, and the surface
// listener is attached or detached.
func (b *Binder) reconcile() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.resetLocked()
	b.updateListeningLocked()
}

// updateListeningLocked attaches the surface listener iff the table
// has at least one binding.
func (b *Binder) updateListeningLocked() {
	if b.surface == nil || b.closed {
		return
	}
	want := b.table.Len() > 0
	switch {
	case want && !b.listening:
		b.surface.AddListener(b.HandleEvent)
		b.listening = true
		b.log.Debug("listening on surface")
	case !want && b.listening:
		b.surface.RemoveListener()
		b.listening = false
		b.log.Debug("stopped listening on surface")
	}
}

// Close detaches the surface and cancels any pending flush. The binder
// must not be used afterward.
func (b *Binder) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.cancelFlushLocked()
	if b.listening && b.surface != nil {
		b.surface.RemoveListener()
		b.listening = false
	}
}
