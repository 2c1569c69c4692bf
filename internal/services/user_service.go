// Package services – UserService
//
// This file implements the UserService, which governs the user lifecycle:
// registration, partial field updates (including joining or leaving a group),
// and the cascading delete that removes a user together with every list item
// it owns and every favor that references the user or those items. Service-
// level errors (e.g. ErrUsernameTaken, ErrUserNotFound, ErrNoFields) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mvasila/go-grocer-backend/internal/domain"
	"github.com/mvasila/go-grocer-backend/internal/repo"
)

// UserService implements the use-cases around user accounts.
// It validates input, delegates persistence to the repo package, and wraps
// every multi-entity mutation in a transaction so invariants are re-checked
// atomically against concurrent writers.
type UserService struct {
	// DB is the database handle used for all user operations.
	DB *gorm.DB
	// Cache, when non-nil, is invalidated by mutations that can change the
	// consolidated shopping list (currently only the cascading delete).
	Cache ListCache
}

// Create registers a new user with the given unique username.
//
// Validation: username, firstName, and lastName must be non-blank, otherwise
// ErrEmptyUsername / ErrEmptyName. Uniqueness of the username is enforced by
// the database unique index; a duplicate yields ErrUsernameTaken no matter
// how the race with a concurrent creator resolves.
func (s *UserService) Create(ctx context.Context, username, firstName, lastName string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrEmptyUsername
	}
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, ErrEmptyName
	}

	u, err := repo.CreateUser(ctx, s.DB, username, firstName, lastName)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return u, nil
}

// Get returns the user addressed by username, or ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	u, err := repo.GetUserByUsername(ctx, s.DB, username)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ListPage returns a page of users ordered by username and the total count.
func (s *UserService) ListPage(ctx context.Context, page, pageSize int) ([]domain.User, int64, error) {
	total, err := repo.CountUsers(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	users, err := repo.ListUsersPage(ctx, s.DB, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update applies a sparse patch to the user addressed by username.
//
// Semantics and validation:
//   - At least one field must be supplied; otherwise ErrNoFields.
//   - The user must exist; otherwise ErrUserNotFound.
//   - When group_id is supplied non-null, the target group must exist;
//     otherwise ErrGroupNotFound. An explicit null clears group membership.
//   - Only supplied fields are written; the username itself is immutable.
//
// The existence checks and the write run inside one transaction so a
// concurrently deleted target group cannot produce a dangling reference.
func (s *UserService) Update(ctx context.Context, username string, patch domain.UserPatch) (*domain.User, error) {
	if patch.Empty() {
		return nil, ErrNoFields
	}

	var updated *domain.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := repo.GetUserByUsername(ctx, tx, username)
		if err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}

		fields := make(map[string]any, 4)
		if patch.FirstName != nil {
			fields["first_name"] = *patch.FirstName
		}
		if patch.LastName != nil {
			fields["last_name"] = *patch.LastName
		}
		if patch.Color != nil {
			fields["color"] = *patch.Color
		}
		if patch.GroupID.Set {
			if patch.GroupID.Value != nil {
				ok, err := repo.GroupExists(ctx, tx, *patch.GroupID.Value)
				if err != nil {
					return err
				}
				if !ok {
					return ErrGroupNotFound
				}
			}
			fields["group_id"] = patch.GroupID.Value
		}

		if err := repo.UpdateUserFields(ctx, tx, u.ID, fields); err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}

		updated, err = repo.GetUserByUsername(ctx, tx, username)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the user addressed by username together with every list
// item it owns, every favor attached to one of those items, and every favor
// where the user is giver or beneficiary. The whole cascade commits or rolls
// back as one unit; a reader can never observe a favor pointing at a deleted
// item or user.
//
// It returns the number of list items and favors removed, for observability.
func (s *UserService) Delete(ctx context.Context, username string) (itemsRemoved, favorsRemoved int64, err error) {
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := repo.GetUserByUsername(ctx, tx, username)
		if err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}

		itemIDs, err := repo.ListItemIDsByOwner(ctx, tx, u.ID)
		if err != nil {
			return err
		}

		// Favors on the user's items first, then favors where the user is a
		// party; each row is deleted exactly once so the counts add up.
		nByItem, err := repo.DeleteFavorsByItemIDs(ctx, tx, itemIDs)
		if err != nil {
			return err
		}
		nByUser, err := repo.DeleteFavorsByUser(ctx, tx, u.ID)
		if err != nil {
			return err
		}
		favorsRemoved = nByItem + nByUser

		itemsRemoved, err = repo.DeleteItemsByOwner(ctx, tx, u.ID)
		if err != nil {
			return err
		}

		if _, err := repo.DeleteUser(ctx, tx, u.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	invalidateList(ctx, s.Cache)
	return itemsRemoved, favorsRemoved, nil
}

// isNotFound treats repo-level not found sentinels as "not found" in a
// driver-agnostic way. It also checks gorm.ErrRecordNotFound for safety.
func isNotFound(err error) bool {
	if errors.Is(err, repo.ErrNotFound) {
		return true
	}
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
