// Package catalog holds the in-memory entity caches sitting between the HTTP
// handlers and the data gateway. Catalogs are populated by an explicit
// Refresh, serve reads from memory, and reconcile admin mutations with the
// gateway optimistically: the cached row is flipped first, the full row is
// upserted, and a failed write reverts exactly that row. Bulk toggles give up
// on per-row rollback and re-fetch the whole list instead.
package catalog

import "errors"

var (
	// ErrNotFound is returned when the target row is not in the cache
	ErrNotFound = errors.New("row not found")

	// ErrWriteInFlight is returned when a toggle races a pending write on the
	// same row. Callers retry once the first write resolves.
	ErrWriteInFlight = errors.New("a write for this row is already in flight")
)

// syncState tracks the reconciliation status of a cached row.
type syncState int

const (
	stateSynced syncState = iota
	statePendingWrite
	stateFailed
)

// rowState is the tagged variant behind the optimistic toggle: PendingWrite
// and Failed carry the pre-toggle value so the rollback path is explicit.
type rowState struct {
	state      syncState
	prevActive bool
}
