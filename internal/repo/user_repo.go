// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a user is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated. Duplicate usernames surface as a
//     unique-constraint violation, which the service layer translates into
//     a domain conflict error.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvasila/go-grocer-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateUser inserts a new User row with the given username and names.
// The user ID is a randomly generated UUID (string), and CreatedAt is set to UTC.
// A duplicate username trips the unique index; the raw DB error is returned
// for the service layer to translate.
func CreateUser(ctx context.Context, db *gorm.DB, username, firstName, lastName string) (*domain.User, error) {
	u := &domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByUsername fetches a single user by its unique username.
// If the record does not exist, it returns ErrNotFound.
func GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CountUsers returns the total number of registered users.
func CountUsers(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.User{}).
		Count(&total).Error
	return total, err
}

// ListUsersPage returns a paginated slice of users ordered by username
// ascending. Use CountUsers to obtain the total for pagination metadata.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListUsersPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).
		Order("username asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateUserFields applies a sparse set of column updates to the user row
// identified by userID. Only the supplied keys are changed; a nil value for
// "group_id" clears group membership. If no rows are affected (user missing),
// it returns ErrNotFound.
//
// Callers must pass at least one field; an empty map is rejected upstream by
// the service layer, never here.
func UpdateUserFields(ctx context.Context, db *gorm.DB, userID string, fields map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteUser removes the user row by primary key and reports whether a row
// was actually deleted. Cascading removal of the user's items and favors is
// orchestrated by the service layer inside the same transaction.
func DeleteUser(ctx context.Context, db *gorm.DB, userID string) (bool, error) {
	res := db.WithContext(ctx).
		Where("id = ?", userID).
		Delete(&domain.User{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AssignUsersToGroup sets group_id for every user in userIDs. It reports the
// number of rows updated so callers can verify all members were assigned.
func AssignUsersToGroup(ctx context.Context, db *gorm.DB, groupID string, userIDs []string) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id IN ?", userIDs).
		Update("group_id", groupID)
	return res.RowsAffected, res.Error
}
