package keymap

import (
	"errors"
	"sync"

	"github.com/kstrand/keychord/internal/host"
	"github.com/kstrand/keychord/internal/input/key"
)

// Command is the callback invoked when a bound sequence matches. The
// event is the one that completed the match, or the last one processed
// when a pending match is committed by the flush timer. Errors are
// reported to the binder's logger and never propagate.
type Command func(ev *host.Event) error

// ErrNilCommand is reported when a sequence is bound without a command.
var ErrNilCommand = errors.New("nil command")

// Entry is one bound sequence.
type Entry struct {
	// Sequence is the parsed, canonical key sequence.
	Sequence *key.Sequence

	// Canonical is Sequence.Canonical(), the table key.
	Canonical string

	// Command is the bound callback.
	Command Command
}

// Report maps each input sequence spec to its normalization errors.
// An empty report means full success. In a batch bind, specs that
// normalize cleanly are inserted even when sibling specs fail.
type Report map[string][]error

// Empty returns true if no sequence failed.
func (r Report) Empty() bool {
	return len(r) == 0
}

// Table maps canonical key sequences to commands. Every key in the
// table is normalizer-canonical; entries are replaced wholesale on
// rebind, never mutated.
type Table struct {
	mu       sync.RWMutex
	entries  map[string]Entry
	onChange func()
}

// NewTable creates an empty binding table.
func NewTable() *Table {
	return &Table{entries: make(map[string]Entry)}
}

// OnChange sets the hook invoked after every mutating call (Bind,
// BindAll, Unbind, Reset), successful or not. The binder uses it to
// reconcile its candidate state and listener attachment. The hook runs
// without the table lock held.
func (t *Table) OnChange(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

// Bind normalizes spec and inserts it, overwriting any existing
// command for the same canonical sequence. The returned report is
// empty on success.
func (t *Table) Bind(spec string, cmd Command) Report {
	return t.BindAll(map[string]Command{spec: cmd})
}

// BindAll binds a batch of sequences. Each spec is independently
// normalized; specs that fail are reported and skipped, the rest are
// inserted.
func (t *Table) BindAll(specs map[string]Command) Report {
	report := make(Report)

	t.mu.Lock()
	for spec, cmd := range specs {
		if cmd == nil {
			report[spec] = []error{ErrNilCommand}
			continue
		}
		seq, errs := key.Normalize(spec)
		if len(errs) > 0 {
			report[spec] = errs
			continue
		}
		canon := seq.Canonical()
		t.entries[canon] = Entry{Sequence: seq, Canonical: canon, Command: cmd}
	}
	t.mu.Unlock()

	t.notify()
	return report
}

// Unbind removes the given sequences. Specs that fail to normalize are
// silently ignored: unbind is best-effort cleanup, not validation.
func (t *Table) Unbind(specs ...string) {
	t.mu.Lock()
	for _, spec := range specs {
		seq, errs := key.Normalize(spec)
		if len(errs) > 0 {
			continue
		}
		delete(t.entries, seq.Canonical())
	}
	t.mu.Unlock()

	t.notify()
}

// Reset removes all entries unconditionally.
func (t *Table) Reset() {
	t.mu.Lock()
	t.entries = make(map[string]Entry)
	t.mu.Unlock()

	t.notify()
}

// Len returns the number of bound sequences.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Lookup returns the command bound to a canonical sequence.
func (t *Table) Lookup(canonical string) (Command, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[canonical]
	if !ok {
		return nil, false
	}
	return e.Command, true
}

// Entries returns a snapshot of all bound sequences.
func (t *Table) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entries := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		entries = append(entries, e)
	}
	return entries
}

// notify runs the on-change hook outside the table lock.
func (t *Table) notify() {
	t.mu.RLock()
	fn := t.onChange
	t.mu.RUnlock()
	if fn != nil {
		fn()
	}
}
