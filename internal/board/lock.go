package board

// Marker names the in-flight operation holding a task's mutation lock. At
// most one marker exists per task id; a second operation on a locked task is
// rejected, never queued.
type Marker string

const (
	MarkerSaving   Marker = "saving"
	MarkerDeleting Marker = "deleting"
	MarkerMutating Marker = "mutating"
)

// locks is the per-task mutation lock map. Process-local UI state, never
// persisted.
type locks map[int64]Marker

// Acquire takes the lock for a task id. It fails when any marker is already
// present.
func (l locks) Acquire(id int64, m Marker) bool {
	if _, held := l[id]; held {
		return false
	}
	l[id] = m
	return true
}

// Release drops the lock for a task id.
func (l locks) Release(id int64) {
	delete(l, id)
}

// Held returns the marker for a task id, if any.
func (l locks) Held(id int64) (Marker, bool) {
	m, ok := l[id]
	return m, ok
}
