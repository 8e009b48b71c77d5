package names

import (
	"github.com/arloliu/esppart/errs"
	"github.com/arloliu/esppart/internal/hash"
)

// Tracker detects repeated partition names.
//
// Names are bucketed by their xxHash64 so lookups stay cheap for large
// tables; a hash collision between two different names is not a duplicate
// and both names are kept in the same bucket.
type Tracker struct {
	byHash map[uint64][]string
	count  int
}

// NewTracker creates a tracker sized for the expected number of names.
func NewTracker(capacity int) *Tracker {
	return &Tracker{
		byHash: make(map[uint64][]string, capacity),
	}
}

// Track records name and returns a *errs.DuplicatePartitionsError if it was
// already tracked.
func (t *Tracker) Track(name string) error {
	id := hash.ID(name)
	for _, existing := range t.byHash[id] {
		if existing == name {
			return &errs.DuplicatePartitionsError{Name: name}
		}
	}

	t.byHash[id] = append(t.byHash[id], name)
	t.count++

	return nil
}

// Contains reports whether name was tracked.
func (t *Tracker) Contains(name string) bool {
	for _, existing := range t.byHash[hash.ID(name)] {
		if existing == name {
			return true
		}
	}

	return false
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return t.count
}
