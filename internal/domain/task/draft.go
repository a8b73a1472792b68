package task

import (
	"strings"
	"time"
)

// CreateDraft describes a task creation request. Priority defaults to MEDIUM
// and the acting user is auto-assigned when AssigneeIDs is empty; both
// defaults are applied by the controller, not here.
type CreateDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	TeamID      *int64     `json:"teamId,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	AssigneeIDs []int64    `json:"assigneeIds"`
}

// FieldPatch carries only the editable fields being changed. Nil means
// "leave as is"; the gateway serializes only non-nil fields.
type FieldPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p FieldPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil
}

// ValidateDraft validates fields required to create a task.
func ValidateDraft(d CreateDraft) error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrInvalidInput
	}
	if d.Priority != "" && !d.Priority.Valid() {
		return ErrInvalidInput
	}
	if d.TeamID != nil && *d.TeamID <= 0 {
		return ErrInvalidInput
	}
	return nil
}

// ValidatePatch validates an edit patch.
func ValidatePatch(p FieldPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrInvalidInput
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return ErrInvalidInput
	}
	return nil
}
