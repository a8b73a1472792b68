package board

import (
	"github.com/ganot/taskdeck/internal/domain/task"
	"github.com/ganot/taskdeck/internal/domain/user"
	"github.com/ganot/taskdeck/internal/notify"
	"github.com/ganot/taskdeck/internal/scope"
)

// Read-only accessors for the rendering layer. Everything is returned by
// value or as a copy; consumers never hold references into controller state.

// Tasks returns the current task list.
func (c *Controller) Tasks() []task.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Snapshot()
}

// Task returns one entry by id.
func (c *Controller) Task(id int64) (task.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Get(id)
}

// Scope returns the scope of the last load.
func (c *Controller) Scope() scope.Scope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scope
}

// Loading reports whether a load is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// ListError returns the page-level load error, if any.
func (c *Controller) ListError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listErr
}

// TaskError returns the inline error for one task, if any.
func (c *Controller) TaskError(id int64) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.taskErrs[id]
}

// LockFor returns the in-flight marker for a task, if its lock is held.
func (c *Controller) LockFor(id int64) (Marker, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locks.Held(id)
}

// IsEditing reports whether a task is in the Editing state.
func (c *Controller) IsEditing(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.editing.Draft(id)
	return ok
}

// DraftFor returns a copy of the scratch draft for a task in Editing.
func (c *Controller) DraftFor(id int64) (Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.editing.Draft(id)
	if !ok {
		return Draft{}, false
	}
	return *d, true
}

// Roster returns the cached member list for the active team scope.
func (c *Controller) Roster() []user.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.Snapshot()
}

// RosterActive reports whether a team roster is currently cached.
func (c *Controller) RosterActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.Active()
}

// RosterError returns the roster-level error, if any. It is distinct from
// ListError so the assignment picker can disable itself independently.
func (c *Controller) RosterError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.err
}

// Notices returns the notification queue for rendering.
func (c *Controller) Notices() *notify.Queue {
	return c.notices
}
