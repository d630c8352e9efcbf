package input

import "time"

// The flush controller owns at most one outstanding timer per binder.
// Arming always cancels the previous timer first, and a generation
// counter invalidates callbacks from timers that lost the race between
// firing and being stopped.

// armFlushLocked schedules the deferred decision: commit the current
// best match if any, otherwise reset to idle.
func (b *Binder) armFlushLocked() {
	b.cancelFlushLocked()
	gen := b.flushGen
	b.flushTimer = time.AfterFunc(b.cfg.FlushInterval, func() {
		b.flushExpired(gen)
	})
}

// cancelFlushLocked stops any pending flush. Cancelling an already
// fired or already cancelled timer is a no-op.
func (b *Binder) cancelFlushLocked() {
	b.flushGen++
	if b.flushTimer != nil {
		b.flushTimer.Stop()
		b.flushTimer = nil
	}
}

// flushExpired commits the best pending match after FlushInterval of
// silence. The held command is invoked with the event that recorded
// the match; with no held match the state simply returns to idle.
func (b *Binder) flushExpired(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || gen != b.flushGen {
		return
	}
	b.flushTimer = nil

	if b.best != nil {
		b.log.Debug("flush commit %q", b.bufCanon)
		b.invokeLocked(b.best.cmd, b.best.ev)
	}
	b.resetLocked()
}
