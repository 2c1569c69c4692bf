// Package services defines the business logic for users, groups, list items,
// favors, and the consolidated shopping list. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer. They fall into three kinds the handlers
// care about: validation (bad input, rejected before any write), not-found
// (a referenced entity is absent or not owned by the asserted user), and
// conflict (a uniqueness invariant would be violated).
package services

import "errors"

// Validation errors: malformed or missing input, detected before any write.
var (
	// ErrEmptyUsername is returned when a username is blank.
	ErrEmptyUsername = errors.New("username is empty")

	// ErrEmptyName is returned when a required first or last name is blank.
	ErrEmptyName = errors.New("first and last name are required")

	// ErrEmptyItemName is returned when a list item name is blank.
	ErrEmptyItemName = errors.New("item name is empty")

	// ErrInvalidPriority is returned when a priority is outside {1, 2, 3}.
	ErrInvalidPriority = errors.New("priority must be 1, 2, or 3")

	// ErrNoFields is returned when a partial update supplies no field at all.
	ErrNoFields = errors.New("no fields supplied")

	// ErrEmptyGroupID is returned when a group id or name is blank.
	ErrEmptyGroupID = errors.New("group id and name are required")

	// ErrMissingAmount is returned when a favor operation omits the amount.
	ErrMissingAmount = errors.New("amount is required")

	// ErrNegativeAmount is returned when a favor amount is below zero.
	ErrNegativeAmount = errors.New("amount must be non-negative")

	// ErrMissingReimbursed is returned when a favor update omits the
	// reimbursed flag.
	ErrMissingReimbursed = errors.New("reimbursed flag is required")
)

// Not-found errors: a referenced entity does not exist, or an item/favor is
// not owned by the username asserted by the caller.
var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrGroupNotFound indicates that the requested group does not exist.
	ErrGroupNotFound = errors.New("group not found")

	// ErrItemNotFound indicates that the requested list item does not exist
	// or belongs to a different user.
	ErrItemNotFound = errors.New("list item not found")

	// ErrFavorNotFound indicates that the requested favor does not exist.
	ErrFavorNotFound = errors.New("favor not found")
)

// Conflict errors: a uniqueness invariant would be violated. These may be
// detected by a pre-check or by the database constraint at commit time;
// either way exactly one of two concurrent creators succeeds.
var (
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrGroupExists is returned when a group with the given id already exists.
	ErrGroupExists = errors.New("group id already exists")

	// ErrItemFulfilled is returned when a favor already exists for the item.
	ErrItemFulfilled = errors.New("item already has a favor")
)
