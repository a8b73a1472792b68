package board

import "github.com/ganot/taskdeck/internal/domain/task"

// Draft is the scratch copy of a task's editable fields while it is in the
// Editing state. Mutating the draft never touches the store; only a
// successful save does.
type Draft struct {
	Title       string
	Description string
	Priority    task.Priority
}

// editing tracks which tasks are in the Editing state. Several tasks may be
// edited at once; each keeps its own scratch draft.
type editing map[int64]*Draft

// Begin snapshots the task's current editable fields into a fresh draft.
// Re-entering Editing for a task already being edited keeps the existing
// draft.
func (e editing) Begin(t task.Task) *Draft {
	if d, ok := e[t.ID]; ok {
		return d
	}
	d := &Draft{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
	}
	e[t.ID] = d
	return d
}

// Draft returns the scratch draft for a task in Editing.
func (e editing) Draft(id int64) (*Draft, bool) {
	d, ok := e[id]
	return d, ok
}

// End discards the draft and returns the task to Viewing.
func (e editing) End(id int64) {
	delete(e, id)
}

// patchFrom builds the minimal field patch: only fields that differ from the
// task's current values are sent.
func (d *Draft) patchFrom(t task.Task) task.FieldPatch {
	var p task.FieldPatch
	if d.Title != t.Title {
		title := d.Title
		p.Title = &title
	}
	if d.Description != t.Description {
		desc := d.Description
		p.Description = &desc
	}
	if d.Priority != t.Priority {
		prio := d.Priority
		p.Priority = &prio
	}
	return p
}
