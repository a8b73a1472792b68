package task

import (
	"time"

	"github.com/ganot/taskdeck/internal/domain/user"
)

// Status represents the workflow status of a task
type Status string

const (
	StatusToDo       Status = "TO_DO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusBlocked    Status = "BLOCKED"
	StatusDone       Status = "DONE"
)

// Statuses lists every valid status. The UI always offers all of them; any
// status may move to any other.
func Statuses() []Status {
	return []Status{StatusToDo, StatusInProgress, StatusBlocked, StatusDone}
}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusBlocked, StatusDone:
		return true
	}
	return false
}

// Priority represents task priority
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single task as returned by the remote API. The assignee
// list has set semantics: a user appears at most once and order carries no
// meaning.
type Task struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Status      Status      `json:"status"`
	Priority    Priority    `json:"priority"`
	TeamID      *int64      `json:"teamId,omitempty"`
	DueDate     *time.Time  `json:"dueDate,omitempty"`
	Assignees   []user.User `json:"assignees,omitempty"`
	CreatedAt   *time.Time  `json:"createdAt,omitempty"`
}

// Clone returns a deep copy: the assignee list, its role slices and the
// pointer fields do not alias the receiver's.
func (t Task) Clone() Task {
	out := t
	if t.TeamID != nil {
		id := *t.TeamID
		out.TeamID = &id
	}
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	if t.CreatedAt != nil {
		c := *t.CreatedAt
		out.CreatedAt = &c
	}
	if t.Assignees != nil {
		out.Assignees = make([]user.User, len(t.Assignees))
		for i, u := range t.Assignees {
			out.Assignees[i] = u.Clone()
		}
	}
	return out
}

// AssigneeIDs returns the ids of the task's assignees in list order.
func (t *Task) AssigneeIDs() []int64 {
	ids := make([]int64, 0, len(t.Assignees))
	for _, u := range t.Assignees {
		ids = append(ids, u.ID)
	}
	return ids
}

// HasAssignee reports whether the user id is in the assignee set.
func (t *Task) HasAssignee(userID int64) bool {
	for _, u := range t.Assignees {
		if u.ID == userID {
			return true
		}
	}
	return false
}
