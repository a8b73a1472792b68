package board

import (
	"context"

	"github.com/ganot/taskdeck/internal/domain/task"
)

// Edit-state machine, independent of the mutation lock: Viewing → Editing →
// Viewing. The scratch draft lives here; the store is only touched by a
// successful save.

// BeginEdit puts a task into the Editing state, snapshotting its current
// title, description and priority into a scratch draft.
func (c *Controller) BeginEdit(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.store.Get(id)
	if !ok {
		return ErrTaskGone
	}
	c.editing.Begin(t)
	return nil
}

// SetDraftTitle updates the scratch title for a task in Editing.
func (c *Controller) SetDraftTitle(id int64, title string) error {
	return c.mutateDraft(id, func(d *Draft) { d.Title = title })
}

// SetDraftDescription updates the scratch description for a task in Editing.
func (c *Controller) SetDraftDescription(id int64, description string) error {
	return c.mutateDraft(id, func(d *Draft) { d.Description = description })
}

// SetDraftPriority updates the scratch priority for a task in Editing.
func (c *Controller) SetDraftPriority(id int64, p task.Priority) error {
	if !p.Valid() {
		return task.ErrInvalidInput
	}
	return c.mutateDraft(id, func(d *Draft) { d.Priority = p })
}

func (c *Controller) mutateDraft(id int64, fn func(*Draft)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.editing.Draft(id)
	if !ok {
		return ErrNotEditing
	}
	fn(d)
	return nil
}

// CancelEdit discards the scratch draft and returns the task to Viewing.
// No gateway call is made and the stored task is left byte-identical.
func (c *Controller) CancelEdit(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing.End(id)
	delete(c.taskErrs, id)
}

// SaveEdit sends the changed fields of the scratch draft. Success returns
// the task to Viewing; failure keeps it in Editing with the draft intact so
// the user can correct and retry. A draft with no changes exits Editing
// without any gateway call.
func (c *Controller) SaveEdit(ctx context.Context, id int64) error {
	c.mu.Lock()
	d, ok := c.editing.Draft(id)
	if !ok {
		c.mu.Unlock()
		return ErrNotEditing
	}
	t, present := c.store.Get(id)
	if !present {
		c.mu.Unlock()
		return ErrTaskGone
	}
	patch := d.patchFrom(t)
	c.mu.Unlock()

	if patch.Empty() {
		c.mu.Lock()
		c.editing.End(id)
		c.mu.Unlock()
		return nil
	}

	if err := c.UpdateFields(ctx, id, patch); err != nil {
		return err
	}

	c.mu.Lock()
	c.editing.End(id)
	c.mu.Unlock()
	return nil
}
