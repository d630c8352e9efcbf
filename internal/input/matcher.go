package input

import (
	"github.com/kstrand/keychord/internal/host"
	"github.com/kstrand/keychord/internal/input/key"
	"github.com/kstrand/keychord/internal/input/keymap"
)

// HandleEvent consumes one key event from the surface. Untrusted
// events are ignored entirely; IME composition input forces an
// immediate reset to idle.
func (b *Binder) HandleEvent(ev *host.Event) {
	if ev == nil || !ev.Trusted {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	if ev.Composing {
		b.resetLocked()
		return
	}
	if ev.Key.Key == key.KeyNone {
		// Not representable as a canonical token.
		return
	}

	b.processLocked(ev)
}

// processLocked runs one turn of the match state machine, looping
// instead of recursing when a shorter exact match consumes the turn
// and the triggering token must be replayed against fresh state. The
// loop runs at most twice per physical token: a reset reseeds the
// candidate set to the full table, which cannot re-empty without
// consuming another token.
func (b *Binder) processLocked(ev *host.Event) {
	for {
		b.cancelFlushLocked()
		b.setBufferLocked(append(b.buf, ev.Key))

		// Narrow the candidate set. Removal is one-directional:
		// filtered candidates never return until the next reset.
		var exact keymap.Command
		for canon, cand := range b.candidates {
			if !cand.seq.HasPrefix(b.buf) {
				delete(b.candidates, canon)
				continue
			}
			if cand.seq.Len() == len(b.buf) {
				exact = cand.cmd
			}
		}
		n := len(b.candidates)

		// While any candidate survives, the holder tracks this
		// turn's exact match, even when that clears it. With no
		// survivors it keeps the previous turn's match so a shorter
		// binding can still fire below.
		if n > 0 {
			if exact != nil {
				b.best = &pendingMatch{cmd: exact, ev: ev}
			} else {
				b.best = nil
			}
		}

		switch {
		case b.best != nil && n < 2:
			// A best match exists and at most one candidate remains:
			// commit it now.
			cmd := b.best.cmd
			b.log.Debug("matched %q", b.bufCanon)
			b.invokeLocked(cmd, ev)
			b.resetLocked()
			if n == 0 {
				// The token that eliminated the longer candidates
				// triggered the match; replay it as the first token
				// of the next sequence.
				continue
			}
			return

		case n == 0:
			b.resetLocked()
			return

		default:
			// Still ambiguous, or a lone longer candidate with no
			// exact match yet. Defer the decision to the flush timer.
			ev.PreventDefault()
			b.armFlushLocked()
			return
		}
	}
}

// resetLocked returns the match state to idle: empty buffer, candidate
// set reseeded to the full table, holder cleared, no pending flush.
func (b *Binder) resetLocked() {
	b.cancelFlushLocked()
	b.setBufferLocked(nil)
	b.best = nil

	b.candidates = make(map[string]candidate)
	for _, e := range b.table.Entries() {
		b.candidates[e.Canonical] = candidate{seq: e.Sequence, cmd: e.Command}
	}
}

// setBufferLocked replaces the buffer, notifying the sequence-change
// callback when the canonical value actually changed.
func (b *Binder) setBufferLocked(events []key.Event) {
	b.buf = events
	canon := key.NewSequenceFrom(events...).Canonical()
	if canon == b.bufCanon {
		return
	}
	b.bufCanon = canon
	if b.onSequence != nil {
		b.onSequence(canon)
	}
}

// invokeLocked runs a command, catching errors and panics so a
// misbehaving callback can never leave the engine inconsistent.
func (b *Binder) invokeLocked(cmd keymap.Command, ev *host.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("command panic: %v", r)
		}
	}()
	if err := cmd(ev); err != nil {
		b.log.Error("command failed: %v", err)
	}
}
