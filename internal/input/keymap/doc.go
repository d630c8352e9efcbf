// Package keymap provides the binding table: the mapping from
// canonical key sequences to commands.
//
// The table is the single source of truth for what is bound. Sequences
// are normalized on the way in (see the key package); failures are
// collected into a per-sequence Report rather than raised. Unbinding
// is best-effort and never errors. Every mutating call fires the
// table's on-change hook so the match engine can reconcile its
// candidate state against the new contents.
//
// Keymap files (JSON, read with gjson, written with sjson) map key
// sequences to named actions; a Resolver supplies the command for each
// action name.
package keymap
