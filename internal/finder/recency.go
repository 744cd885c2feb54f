package finder

import "slices"

// recencyQueue is a bounded sequence of collection names, most recently
// promoted first. It is a search-order hint only, never a correctness
// source.
type recencyQueue struct {
	names    []string
	capacity int
}

func newRecencyQueue(capacity int) *recencyQueue {
	return &recencyQueue{capacity: capacity}
}

// promote moves the name to the front, inserting it if absent and dropping
// the oldest entry when the queue is full. Re-insertion never duplicates.
func (q *recencyQueue) promote(name string) {
	if i := slices.Index(q.names, name); i >= 0 {
		q.names = slices.Delete(q.names, i, i+1)
	}
	q.names = append([]string{name}, q.names...)
	if len(q.names) > q.capacity {
		q.names = q.names[:q.capacity]
	}
}

// reorder returns the candidates with every remembered name moved to the
// front. The queue is walked most recent first, each hit prepended in turn;
// candidates the queue does not remember keep their relative order. No
// candidate is ever added or removed.
func (q *recencyQueue) reorder(candidates []string) []string {
	ordered := slices.Clone(candidates)
	for _, name := range q.names {
		if i := slices.Index(ordered, name); i >= 0 {
			ordered = slices.Delete(ordered, i, i+1)
			ordered = append([]string{name}, ordered...)
		}
	}
	return ordered
}
