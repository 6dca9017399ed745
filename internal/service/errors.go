package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrRevisionConflict is returned when a write carries a deal revision
	// that no longer matches the stored row
	ErrRevisionConflict = errors.New("deal was modified by someone else")

	// ErrFinancialsLocked is returned when a rep edits claim financials
	// after the insurance approval
	ErrFinancialsLocked = errors.New("financial fields are locked after approval")

	// ErrRepInactive is returned when a deal is assigned to a deactivated rep
	ErrRepInactive = errors.New("rep is not active")

	// ErrDuplicateEmail is returned when a rep email is already registered
	ErrDuplicateEmail = errors.New("email already in use")
)
