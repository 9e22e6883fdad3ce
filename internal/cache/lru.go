package cache

// LRU is an exact-order least-recently-used recency list over a fixed pool
// of slot indices 0..N. The front of the list is the least recently used
// slot; the back is the most recently used. Its contents are always a
// permutation of 0..N.
type LRU struct {
	order []int
}

// NewLRU builds a recency list for a pool of n slots, initially ordered
// 0, 1, ..., n-1 (oldest first).
func NewLRU(n int) *LRU {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return &LRU{order: order}
}

// Touch records that slot was just used: it is removed from its current
// position and appended at the back. slot must already be present.
func (l *LRU) Touch(slot int) {
	for i, s := range l.order {
		if s == slot {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	l.order = append(l.order, slot)
}

// Victim returns the front (least recently used) slot without mutating the
// list. Callers that commit an eviction to this slot must follow up with
// Touch to record the new use.
func (l *LRU) Victim() int {
	return l.order[0]
}
