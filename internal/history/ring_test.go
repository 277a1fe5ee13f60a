package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func entry(i int) Entry {
	return Entry{ID: fmt.Sprintf("id-%d", i)}
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestRingAddAndRecent(t *testing.T) {
	r := NewRing(5)
	for i := 0; i < 3; i++ {
		r.Add(entry(i))
	}

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"id-0", "id-1", "id-2"}, ids(r.Recent(0)))
	assert.Equal(t, []string{"id-1", "id-2"}, ids(r.Recent(2)))
}

func TestRingEvictsOldestFirst(t *testing.T) {
	r := NewRing(3)
	for i := 0; i < 5; i++ {
		r.Add(entry(i))
	}

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"id-2", "id-3", "id-4"}, ids(r.Snapshot()))
}

func TestRingRecentBeyondSize(t *testing.T) {
	r := NewRing(4)
	r.Add(entry(0))

	assert.Equal(t, []string{"id-0"}, ids(r.Recent(50)))
}

func TestRingMinimumCapacity(t *testing.T) {
	r := NewRing(0)
	r.Add(entry(0))
	r.Add(entry(1))

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []string{"id-1"}, ids(r.Snapshot()))
}

func TestRingWrapsManyTimes(t *testing.T) {
	r := NewRing(3)
	for i := 0; i < 100; i++ {
		r.Add(entry(i))
	}

	assert.Equal(t, []string{"id-97", "id-98", "id-99"}, ids(r.Snapshot()))
}
