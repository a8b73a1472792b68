package team

import "errors"

var (
	// ErrTeamNotFound indicates the team doesn't exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidInput indicates invalid team input.
	ErrInvalidInput = errors.New("invalid team input")
	// ErrInvalidMemberID indicates a member id that is not a positive integer.
	ErrInvalidMemberID = errors.New("member id must be a positive integer")
	// ErrAdminRemoval indicates an attempt to remove the team administrator.
	ErrAdminRemoval = errors.New("cannot remove the team administrator")
)
