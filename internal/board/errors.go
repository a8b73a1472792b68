package board

import "errors"

var (
	// ErrTaskBusy indicates another operation on the same task is still in
	// flight. The caller must retry after it settles; blocked operations are
	// never queued.
	ErrTaskBusy = errors.New("task has an operation in flight")
	// ErrNotEditing indicates an edit action on a task that is not in the
	// Editing state.
	ErrNotEditing = errors.New("task is not being edited")
	// ErrTaskGone indicates the task is no longer present in the store.
	ErrTaskGone = errors.New("task is no longer present")
)
