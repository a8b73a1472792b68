// Package board keeps the in-memory view of a task list consistent with the
// remote API while independent per-task mutations are in flight. It owns the
// task collection store, the per-task mutation locks, the edit-state
// machine and the team roster cache; the rendering layer is a pure read-only
// consumer of its snapshots.
package board

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/ganot/taskdeck/internal/domain/task"
	"github.com/ganot/taskdeck/internal/domain/user"
	"github.com/ganot/taskdeck/internal/gateway"
	"github.com/ganot/taskdeck/internal/notify"
	"github.com/ganot/taskdeck/internal/scope"
)

// Identity resolves the current authenticated user id. The controller needs
// it to default-assign ownership on create and to resolve the "my tasks"
// view.
type Identity interface {
	CurrentUserID(ctx context.Context) (int64, error)
}

// Controller orchestrates loads and mutations against the entity gateway.
// All state is guarded by one mutex; gateway calls happen outside it, with
// the per-task lock taken immediately before the call and released
// immediately after it settles.
type Controller struct {
	tasks    gateway.TaskGateway
	teams    gateway.TeamGateway
	identity Identity
	notices  *notify.Queue
	logger   *slog.Logger

	mu       sync.Mutex
	store    store
	locks    locks
	editing  editing
	roster   roster
	scope    scope.Scope
	loadSeq  uint64
	loading  bool
	listErr  string
	taskErrs map[int64]string
}

// NewController creates a controller. notices may be nil when no transient
// feedback is wanted (tests mostly pass one anyway).
func NewController(tasks gateway.TaskGateway, teams gateway.TeamGateway, identity Identity, notices *notify.Queue, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if notices == nil {
		notices = notify.NewQueue()
	}
	return &Controller{
		tasks:    tasks,
		teams:    teams,
		identity: identity,
		notices:  notices,
		logger:   logger,
		locks:    locks{},
		editing:  editing{},
		taskErrs: map[int64]string{},
	}
}

// BindScope subscribes the controller to a filter context so every effective
// scope change triggers a reload.
func (c *Controller) BindScope(ctx context.Context, fc *scope.Context) {
	fc.Subscribe(func(s scope.Scope) {
		if err := c.LoadForScope(ctx, s); err != nil {
			c.logger.Warn("scope reload failed", "scope", s.String(), "error", err)
		}
	})
}

// LoadForScope fetches the task list for the scope and replaces the store
// wholesale. For a team scope the roster cache is refreshed too, with its
// own error state; for Mine the roster is reset to "no team selected".
//
// Overlapping loads are sequenced with a monotonic token: only the most
// recently started load may publish its response, stale responses are
// discarded.
func (c *Controller) LoadForScope(ctx context.Context, s scope.Scope) error {
	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	c.scope = s
	c.loading = true
	c.mu.Unlock()

	list, listErr := c.fetchList(ctx, s)

	var members []user.User
	var rosterErr error
	if teamID, ok := s.TeamID(); ok {
		members, rosterErr = c.teams.ListMembers(ctx, teamID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.loadSeq {
		// A newer load started while this one was in flight.
		c.logger.Debug("discarding stale load response", "scope", s.String())
		return nil
	}
	c.loading = false

	if listErr != nil {
		c.listErr = listErr.Error()
		return fmt.Errorf("loading tasks for %s: %w", s.String(), listErr)
	}

	c.store.Replace(list)
	c.listErr = ""
	c.taskErrs = map[int64]string{}

	if teamID, ok := s.TeamID(); ok {
		if rosterErr != nil {
			c.roster.SetError(teamID, rosterErr.Error())
		} else {
			c.roster.SetMembers(teamID, members)
		}
	} else {
		c.roster.Reset()
	}
	return nil
}

func (c *Controller) fetchList(ctx context.Context, s scope.Scope) ([]task.Task, error) {
	if teamID, ok := s.TeamID(); ok {
		return c.tasks.ListByTeam(ctx, teamID)
	}
	me, err := c.identity.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return c.tasks.ListByUser(ctx, me)
}

// Reload re-runs LoadForScope with the current scope.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	s := c.scope
	c.mu.Unlock()
	return c.LoadForScope(ctx, s)
}

// Create validates the draft, applies the default-ownership policy and
// creates the task. On success the whole scope is reloaded instead of
// appending locally: the server may have resolved derived fields (id
// assignment, membership checks) that only a fresh list reflects.
//
// On failure the store is untouched and the error is returned to the caller
// so the create form can stay populated.
func (c *Controller) Create(ctx context.Context, draft task.CreateDraft) error {
	if draft.Priority == "" {
		draft.Priority = task.PriorityMedium
	}
	if err := task.ValidateDraft(draft); err != nil {
		return err
	}
	if len(draft.AssigneeIDs) == 0 {
		me, err := c.identity.CurrentUserID(ctx)
		if err != nil {
			return fmt.Errorf("resolving identity: %w", err)
		}
		draft.AssigneeIDs = []int64{me}
	}

	if _, err := c.tasks.Create(ctx, draft); err != nil {
		return err
	}
	return c.Reload(ctx)
}

// UpdateFields sends the changed editable fields of a task and patches the
// store entry in place on success. The task's lock must be free.
func (c *Controller) UpdateFields(ctx context.Context, id int64, patch task.FieldPatch) error {
	if err := task.ValidatePatch(patch); err != nil {
		return err
	}
	if err := c.acquire(id, MarkerSaving); err != nil {
		return err
	}

	updated, err := c.tasks.UpdateFields(ctx, id, patch)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.locks.Release(id)
	if err != nil {
		c.taskErrs[id] = err.Error()
		return err
	}
	c.store.Patch(*updated)
	delete(c.taskErrs, id)
	return nil
}

// ChangeStatus moves a task to the given status. Any status may move to any
// other; the four enum values are always all on offer.
func (c *Controller) ChangeStatus(ctx context.Context, id int64, next task.Status) error {
	if !next.Valid() {
		return task.ErrInvalidStatus
	}
	if err := c.acquire(id, MarkerMutating); err != nil {
		return err
	}

	updated, err := c.tasks.ChangeStatus(ctx, id, next)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.locks.Release(id)
	if err != nil {
		c.taskErrs[id] = err.Error()
		return err
	}
	c.store.Patch(*updated)
	delete(c.taskErrs, id)
	c.notices.Push(notify.KindSuccess, fmt.Sprintf("Status changed to %s", next))
	return nil
}

// Assign adds a user to a task's assignee set. When a team scope is active
// the user must come from the cached roster; the store then takes whatever
// assignee set the server returns, never a locally computed union.
func (c *Controller) Assign(ctx context.Context, taskID, userID int64) error {
	if userID <= 0 {
		return task.ErrInvalidInput
	}
	c.mu.Lock()
	rosterActive := c.roster.Active()
	inRoster := c.roster.Contains(userID)
	c.mu.Unlock()
	if rosterActive && !inRoster {
		return task.ErrInvalidInput
	}
	return c.assignment(ctx, taskID, userID, true)
}

// Unassign removes a user from a task's assignee set.
func (c *Controller) Unassign(ctx context.Context, taskID, userID int64) error {
	if userID <= 0 {
		return task.ErrInvalidInput
	}
	return c.assignment(ctx, taskID, userID, false)
}

func (c *Controller) assignment(ctx context.Context, taskID, userID int64, add bool) error {
	if err := c.acquire(taskID, MarkerMutating); err != nil {
		return err
	}

	var updated *task.Task
	var err error
	if add {
		updated, err = c.tasks.Assign(ctx, taskID, userID)
	} else {
		updated, err = c.tasks.Unassign(ctx, taskID, userID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.locks.Release(taskID)
	if err != nil {
		c.taskErrs[taskID] = err.Error()
		return err
	}
	c.store.Patch(*updated)
	delete(c.taskErrs, taskID)
	if add {
		c.notices.Push(notify.KindSuccess, "Assignee added")
	} else {
		c.notices.Push(notify.KindSuccess, "Assignee removed")
	}
	return nil
}

// Remove deletes a task. User confirmation is the caller's concern; by the
// time Remove runs the decision is made. On success the entry disappears
// from the store; on failure it remains and the error is kept inline.
func (c *Controller) Remove(ctx context.Context, id int64) error {
	if err := c.acquire(id, MarkerDeleting); err != nil {
		return err
	}

	err := c.tasks.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.locks.Release(id)
	if err != nil {
		c.taskErrs[id] = err.Error()
		return err
	}
	c.store.Remove(id)
	c.editing.End(id)
	delete(c.taskErrs, id)
	c.notices.Push(notify.KindSuccess, "Task deleted")
	return nil
}

// acquire takes the per-task lock or reports the task busy.
func (c *Controller) acquire(id int64, m Marker) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.locks.Acquire(id, m) {
		return ErrTaskBusy
	}
	return nil
}
