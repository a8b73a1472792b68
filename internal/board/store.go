package board

import "github.com/ganot/taskdeck/internal/domain/task"

// store is the authoritative in-memory task list for the current scope. It
// is owned by the Controller; the rendering layer only ever sees copies.
//
// Invariant: no two entries share an id. Replace drops duplicate ids from
// the incoming list (first occurrence wins); Patch and Remove preserve
// uniqueness by construction.
type store struct {
	tasks []task.Task
}

// Replace swaps the whole list, preserving server order.
func (s *store) Replace(tasks []task.Task) {
	next := make([]task.Task, 0, len(tasks))
	seen := make(map[int64]struct{}, len(tasks))
	for _, t := range tasks {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		next = append(next, t)
	}
	s.tasks = next
}

// Patch replaces the entry with a matching id in place, keeping every other
// entry's position. Unknown ids are ignored; a full reload may have removed
// the entry while the mutation was in flight.
func (s *store) Patch(t task.Task) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t
			return true
		}
	}
	return false
}

// Remove deletes the entry with the id, if present.
func (s *store) Remove(id int64) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a deep copy of the entry with the id.
func (s *store) Get(id int64) (task.Task, bool) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return s.tasks[i].Clone(), true
		}
	}
	return task.Task{}, false
}

// Snapshot returns a deep copy of the list. Consumers can hold or mutate
// the result without reaching back into controller state.
func (s *store) Snapshot() []task.Task {
	out := make([]task.Task, len(s.tasks))
	for i := range s.tasks {
		out[i] = s.tasks[i].Clone()
	}
	return out
}

// Len returns the number of entries.
func (s *store) Len() int {
	return len(s.tasks)
}
