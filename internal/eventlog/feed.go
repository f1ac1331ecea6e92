package eventlog

import "sync"

// DefaultCapacity is the number of records a Feed keeps by default.
const DefaultCapacity = 50

// Feed is a fixed-size ring of the most recent records.
// It is safe for concurrent use.
type Feed struct {
	mu      sync.RWMutex
	entries []Record
	head    int
	count   int
	total   int
}

// NewFeed creates a feed retaining at most capacity records.
// Non-positive capacities use DefaultCapacity.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{entries: make([]Record, capacity)}
}

// Append adds a record, evicting the oldest when full.
func (f *Feed) Append(r Record) {
	f.mu.Lock()
	defer f.mu.Unlock()

	size := len(f.entries)
	f.entries[f.head] = r
	f.head = (f.head + 1) % size
	if f.count < size {
		f.count++
	}
	f.total++
}

// Records returns the retained records, oldest first.
func (f *Feed) Records() []Record {
	f.mu.RLock()
	defer f.mu.RUnlock()

	size := len(f.entries)
	result := make([]Record, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + size) % size
		result[i] = f.entries[idx]
	}
	return result
}

// Tail returns up to n of the most recent records, oldest first.
func (f *Feed) Tail(n int) []Record {
	all := f.Records()
	if n >= len(all) {
		return all
	}
	if n <= 0 {
		return nil
	}
	return all[len(all)-n:]
}

// Len returns the number of retained records.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.count
}

// Total returns the number of records ever appended, including evicted ones.
func (f *Feed) Total() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.total
}

// Capacity returns the retention bound.
func (f *Feed) Capacity() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}

// Resize changes the retention bound, keeping the most recent records.
func (f *Feed) Resize(capacity int) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	keep := f.Tail(capacity)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = make([]Record, capacity)
	copy(f.entries, keep)
	f.count = len(keep)
	f.head = f.count % capacity
}

// Clear drops all retained records.
func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.entries {
		f.entries[i] = Record{}
	}
	f.head = 0
	f.count = 0
}

// Filter returns retained records of the given type, oldest first.
func (f *Feed) Filter(typ string) []Record {
	var result []Record
	for _, r := range f.Records() {
		if r.Type == typ {
			result = append(result, r)
		}
	}
	return result
}
