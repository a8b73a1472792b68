package task_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/taskdeck/internal/domain/task"
)

func TestValidateDraft(t *testing.T) {
	teamID := int64(3)
	badTeam := int64(-1)

	require.NoError(t, task.ValidateDraft(task.CreateDraft{Title: "ok"}))
	require.NoError(t, task.ValidateDraft(task.CreateDraft{Title: "ok", Priority: task.PriorityHigh, TeamID: &teamID}))

	require.ErrorIs(t, task.ValidateDraft(task.CreateDraft{Title: ""}), task.ErrInvalidInput)
	require.ErrorIs(t, task.ValidateDraft(task.CreateDraft{Title: "  \t "}), task.ErrInvalidInput)
	require.ErrorIs(t, task.ValidateDraft(task.CreateDraft{Title: "ok", Priority: "URGENT"}), task.ErrInvalidInput)
	require.ErrorIs(t, task.ValidateDraft(task.CreateDraft{Title: "ok", TeamID: &badTeam}), task.ErrInvalidInput)
}

func TestValidatePatch(t *testing.T) {
	empty := ""
	title := "new"
	bad := task.Priority("URGENT")
	good := task.PriorityLow

	require.NoError(t, task.ValidatePatch(task.FieldPatch{}))
	require.NoError(t, task.ValidatePatch(task.FieldPatch{Title: &title, Priority: &good}))

	require.ErrorIs(t, task.ValidatePatch(task.FieldPatch{Title: &empty}), task.ErrInvalidInput)
	require.ErrorIs(t, task.ValidatePatch(task.FieldPatch{Priority: &bad}), task.ErrInvalidInput)
}

func TestStatusValid(t *testing.T) {
	for _, s := range task.Statuses() {
		require.True(t, s.Valid())
	}
	require.False(t, task.Status("CANCELLED").Valid())
	require.False(t, task.Status("").Valid())
	require.Len(t, task.Statuses(), 4)
}

func TestAssigneeHelpers(t *testing.T) {
	tk := task.Task{ID: 1}
	require.Empty(t, tk.AssigneeIDs())
	require.False(t, tk.HasAssignee(5))
}
