// Package services – FavorService
//
// This file implements the FavorService, the state machine governing a list
// item's fulfillment and reimbursement:
//
//	Pending (no favor) → Fulfilled (favor, reimbursed_at null)
//	Fulfilled ⇄ Reimbursed (reimbursed_at set / cleared)
//
// Creating a favor marks the item fulfilled; deleting it returns the item to
// pending. The reimbursed flag is freely togglable; clearing it discards
// the previous reimbursement timestamp rather than archiving it. Giver and
// beneficiary may be the same user.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mvasila/go-grocer-backend/internal/domain"
	"github.com/mvasila/go-grocer-backend/internal/repo"
)

// FavorService implements the use-cases around favors.
type FavorService struct {
	// DB is the database handle used for all favor operations.
	DB *gorm.DB
	// Cache, when non-nil, is invalidated when the set of unfulfilled items
	// changes, that is favor creation and deletion, but not reimbursement updates.
	Cache ListCache
}

// Create records that byUsername bought the item identified by itemID on
// behalf of forUsername, transitioning the item from pending to fulfilled.
//
// Semantics and validation:
//   - amount must be supplied and non-negative; otherwise ErrMissingAmount /
//     ErrNegativeAmount, with no write attempted.
//   - Both users must exist (ErrUserNotFound) and the item must exist AND be
//     owned by forUsername (ErrItemNotFound); a favor is always for the
//     item's actual owner.
//   - At most one favor per item: a second creation attempt yields
//     ErrItemFulfilled. The unique index on favors.item_id is the authority,
//     so two concurrent creators resolve to exactly one winner.
//
// Concurrency & atomicity: the existence checks and the insert run in one
// transaction; the constraint re-checks uniqueness at commit time.
func (s *FavorService) Create(ctx context.Context, itemID int64, byUsername, forUsername string, amount *float64) (*domain.Favor, error) {
	if amount == nil {
		return nil, ErrMissingAmount
	}
	if *amount < 0 {
		return nil, ErrNegativeAmount
	}

	var created *domain.Favor
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		by, err := repo.GetUserByUsername(ctx, tx, byUsername)
		if err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}
		forUser, err := repo.GetUserByUsername(ctx, tx, forUsername)
		if err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}

		// The item must belong to the beneficiary.
		if _, err := repo.GetListItemOwned(ctx, tx, itemID, forUser.ID); err != nil {
			if isNotFound(err) {
				return ErrItemNotFound
			}
			return err
		}

		created, err = repo.CreateFavor(ctx, tx, itemID, by.ID, forUser.ID, *amount)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
				return ErrItemFulfilled
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateList(ctx, s.Cache)
	return created, nil
}

// Update overwrites the favor's amount and reimbursement state.
//
// Both arguments are required (ErrMissingReimbursed / ErrMissingAmount).
// reimbursed=true stamps reimbursed_at with the current time; false clears
// it. The operation is not append-only: toggling true→false→true produces a
// fresh timestamp, and the original one is gone.
func (s *FavorService) Update(ctx context.Context, favorID int64, reimbursed *bool, amount *float64) (*domain.Favor, error) {
	if reimbursed == nil {
		return nil, ErrMissingReimbursed
	}
	if amount == nil {
		return nil, ErrMissingAmount
	}
	if *amount < 0 {
		return nil, ErrNegativeAmount
	}

	var updated *domain.Favor
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetFavor(ctx, tx, favorID); err != nil {
			if isNotFound(err) {
				return ErrFavorNotFound
			}
			return err
		}

		var reimbursedAt *time.Time
		if *reimbursed {
			now := time.Now().UTC()
			reimbursedAt = &now
		}
		if err := repo.UpdateFavor(ctx, tx, favorID, *amount, reimbursedAt); err != nil {
			if isNotFound(err) {
				return ErrFavorNotFound
			}
			return err
		}

		var err error
		updated, err = repo.GetFavor(ctx, tx, favorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Get returns the favor addressed by id, or ErrFavorNotFound.
func (s *FavorService) Get(ctx context.Context, favorID int64) (*domain.Favor, error) {
	f, err := repo.GetFavor(ctx, s.DB, favorID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrFavorNotFound
		}
		return nil, err
	}
	return f, nil
}

// List returns the favors involving username, optionally narrowed by role
// ("given" or "received"; anything else means both sides).
func (s *FavorService) List(ctx context.Context, username, role string) ([]domain.Favor, error) {
	u, err := repo.GetUserByUsername(ctx, s.DB, username)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return repo.ListFavorsByUser(ctx, s.DB, u.ID, role)
}

// Delete removes the favor addressed by id, returning its item to the
// pending state (it will reappear on the consolidated shopping list).
func (s *FavorService) Delete(ctx context.Context, favorID int64) error {
	deleted, err := repo.DeleteFavor(ctx, s.DB, favorID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrFavorNotFound
	}

	invalidateList(ctx, s.Cache)
	return nil
}
