// Package input implements the key-sequence match engine.
//
// A Binder consumes one key event at a time from a host surface and
// narrows the set of bound sequences by prefix. When a sequence
// matches exactly and nothing longer could still match, its command
// fires immediately. When a shorter binding and a longer one share a
// prefix ("d" and "dd"), the decision is deferred behind a flush
// timer: more input resolves the ambiguity, silence commits the best
// match seen so far.
//
// If a later key eliminates every longer candidate, the shorter match
// fires and the eliminating key is replayed as the start of a fresh
// sequence, so no input is ever silently dropped.
//
// The engine has no internal concurrency: it runs once per incoming
// key event and once per flush expiry, with the two mutually excluded
// by the binder's lock.
package input
