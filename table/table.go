package table

import "slices"

// Table is an ordered sequence of partition entries. The order is the
// on-flash layout order.
//
// Mutating methods never validate; call Validate explicitly once the table
// is complete.
//
// Note: Table is NOT thread-safe. A table is owned by one goroutine at a time.
type Table struct {
	entries []Entry
}

// New creates a table holding a copy of entries.
func New(entries ...Entry) *Table {
	return &Table{entries: slices.Clone(entries)}
}

// Entries returns a copy of the entries in table order.
func (t *Table) Entries() []Entry {
	return slices.Clone(t.entries)
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Add appends an entry.
func (t *Table) Add(e Entry) {
	t.entries = append(t.entries, e)
}

// Remove deletes the first entry with the given name and reports whether
// one was found.
func (t *Table) Remove(name string) bool {
	i := t.index(name)
	if i < 0 {
		return false
	}
	t.entries = slices.Delete(t.entries, i, i+1)

	return true
}

// Find returns the first entry with the given name.
func (t *Table) Find(name string) (Entry, bool) {
	i := t.index(name)
	if i < 0 {
		return Entry{}, false
	}

	return t.entries[i], true
}

// Equal reports whether both tables hold equal entries in the same order.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}

	return slices.Equal(t.entries, other.entries)
}

func (t *Table) index(name string) int {
	return slices.IndexFunc(t.entries, func(e Entry) bool { return e.Name == name })
}
