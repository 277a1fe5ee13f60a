// Package history keeps a bounded record of completed analyses for the
// history and stats endpoints. The hot path is a fixed-capacity ring
// buffer with oldest-first eviction; sqlite persistence is optional and
// never blocks or fails a scoring request.
package history

import (
	"sync"
	"time"

	"github.com/scamradar/scamradar/internal/scoring"
)

// Entry is one recorded analysis.
type Entry struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Result      scoring.Result `json:"analysis"`
	ClientIP    string         `json:"user_ip,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// Ring is a thread-safe fixed-capacity buffer of entries. When full,
// adding evicts the oldest entry.
type Ring struct {
	mu       sync.RWMutex
	entries  []Entry
	start    int // index of the oldest entry
	size     int
	capacity int
}

// NewRing creates a ring holding at most capacity entries.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{
		entries:  make([]Entry, capacity),
		capacity: capacity,
	}
}

// Add appends an entry, evicting the oldest when full.
func (r *Ring) Add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := (r.start + r.size) % r.capacity
	r.entries[idx] = e
	if r.size < r.capacity {
		r.size++
	} else {
		r.start = (r.start + 1) % r.capacity
	}
}

// Len returns the number of entries currently held.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}

// Recent returns up to n entries, oldest first, newest last. n <= 0
// returns everything held.
func (r *Ring) Recent(n int) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n <= 0 || n > r.size {
		n = r.size
	}

	out := make([]Entry, 0, n)
	for i := r.size - n; i < r.size; i++ {
		out = append(out, r.entries[(r.start+i)%r.capacity])
	}
	return out
}

// Snapshot returns every held entry, oldest first.
func (r *Ring) Snapshot() []Entry {
	return r.Recent(0)
}
