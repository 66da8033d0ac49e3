package caption

// staleWindow is the 10-second tolerance [PendingQueue.Validate] uses
// to purge entries left stranded by a seek (spec.md §4.4).
const staleWindow = 10.0 // seconds

// PendingEntry is one scheduled caption awaiting its playback position
// (spec.md §3). The queue is kept non-decreasing by Pos.
type PendingEntry struct {
	Pos     float64
	Caption CaptionPacket
}

// PendingQueue is the Pending Queue (C3): a position-ordered queue of
// deferred captions, validated and drained against the interpolated
// playback clock (spec.md §4.4).
//
// Tie-breaking for equal Pos is unspecified by the source; this
// implementation resolves it as FIFO (stable insertion order), the
// simplest total order consistent with "non-decreasing by pos" (see
// DESIGN.md's Open Question ledger).
type PendingQueue struct {
	entries []PendingEntry
}

// Len reports how many entries are currently queued.
func (q *PendingQueue) Len() int {
	return len(q.entries)
}

// Reset empties the queue (spec.md §8: "after reset() or
// service-changed, the pending queue is empty").
func (q *PendingQueue) Reset() {
	q.entries = q.entries[:0]
}

// Defer inserts a caption to fire at pos, maintaining non-decreasing
// order by Pos with FIFO tie-break among equal positions.
func (q *PendingQueue) Defer(pos float64, caption CaptionPacket) {
	i := len(q.entries)
	for i > 0 && q.entries[i-1].Pos > pos {
		i--
	}
	q.entries = append(q.entries, PendingEntry{})
	copy(q.entries[i+1:], q.entries[i:])
	q.entries[i] = PendingEntry{Pos: pos, Caption: caption}
}

// Tick pops every entry with Pos ≤ now, in non-decreasing Pos order,
// and returns them for dispatch to the state machine (spec.md §4.4,
// §5: "within a tick, entries are dispatched in non-decreasing pos").
func (q *PendingQueue) Tick(now float64) []PendingEntry {
	i := 0
	for i < len(q.entries) && q.entries[i].Pos <= now {
		i++
	}
	if i == 0 {
		return nil
	}
	due := append([]PendingEntry(nil), q.entries[:i]...)
	q.entries = q.entries[i:]
	return due
}

// Validate drops entries whose |Pos−now| ≥ 10s, purging captions left
// stale by a seek (spec.md §4.4, §8).
func (q *PendingQueue) Validate(now float64) {
	kept := q.entries[:0]
	for _, e := range q.entries {
		d := e.Pos - now
		if d < 0 {
			d = -d
		}
		if d < staleWindow {
			kept = append(kept, e)
		}
	}
	q.entries = kept
}
