// Package services – ItemService
//
// This file implements the ItemService, which manages a user's personal list
// items: adding, renaming/reprioritizing, listing with fulfillment status,
// and deleting. Deleting an item cascades to its favor, if one exists, in the
// same transaction so no favor can outlive its item.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mvasila/go-grocer-backend/internal/domain"
	"github.com/mvasila/go-grocer-backend/internal/repo"
)

// ItemService implements the use-cases around personal list items.
type ItemService struct {
	// DB is the database handle used for all item operations.
	DB *gorm.DB
	// Cache, when non-nil, is invalidated by every mutation: adding,
	// renaming, or removing an item can change the consolidated list.
	Cache ListCache
}

// validItemInput checks the shared create/update constraints: a non-blank
// name and a priority within {1, 2, 3}. The name is stored verbatim; only
// the blank check trims.
func validItemInput(itemName string, priority int) error {
	if strings.TrimSpace(itemName) == "" {
		return ErrEmptyItemName
	}
	if priority < 1 || priority > 3 {
		return ErrInvalidPriority
	}
	return nil
}

// Create adds an item to ownerUsername's list.
//
// Validation precedes any write: a blank name yields ErrEmptyItemName, an
// out-of-range priority ErrInvalidPriority, and an unknown owner
// ErrUserNotFound. In every case no row is created.
func (s *ItemService) Create(ctx context.Context, ownerUsername, itemName string, priority int) (*domain.ListItem, error) {
	if err := validItemInput(itemName, priority); err != nil {
		return nil, err
	}

	var created *domain.ListItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := repo.GetUserByUsername(ctx, tx, ownerUsername)
		if err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}
		created, err = repo.CreateListItem(ctx, tx, u.ID, itemName, priority)
		return err
	})
	if err != nil {
		return nil, err
	}

	invalidateList(ctx, s.Cache)
	return created, nil
}

// List returns every item on ownerUsername's list, oldest first, with the
// favor preloaded so callers can tell pending from fulfilled items.
func (s *ItemService) List(ctx context.Context, ownerUsername string) ([]domain.ListItem, error) {
	u, err := repo.GetUserByUsername(ctx, s.DB, ownerUsername)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return repo.ListItemsByOwner(ctx, s.DB, u.ID)
}

// Update replaces the name and priority of the item identified by itemID,
// provided it is owned by ownerUsername. An item owned by someone else is
// reported as ErrItemNotFound, exactly like a missing one. The item's favor,
// if any, is not affected.
func (s *ItemService) Update(ctx context.Context, ownerUsername string, itemID int64, itemName string, priority int) (*domain.ListItem, error) {
	if err := validItemInput(itemName, priority); err != nil {
		return nil, err
	}

	var updated *domain.ListItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := repo.GetUserByUsername(ctx, tx, ownerUsername)
		if err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}
		if err := repo.UpdateListItem(ctx, tx, itemID, u.ID, itemName, priority); err != nil {
			if isNotFound(err) {
				return ErrItemNotFound
			}
			return err
		}
		updated, err = repo.GetListItemOwned(ctx, tx, itemID, u.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	invalidateList(ctx, s.Cache)
	return updated, nil
}

// Delete removes the item identified by itemID from ownerUsername's list and,
// in the same transaction, the favor attached to it if one exists. Either
// both rows go or neither does.
func (s *ItemService) Delete(ctx context.Context, ownerUsername string, itemID int64) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := repo.GetUserByUsername(ctx, tx, ownerUsername)
		if err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}
		// Ownership gate before touching the favor.
		if _, err := repo.GetListItemOwned(ctx, tx, itemID, u.ID); err != nil {
			if isNotFound(err) {
				return ErrItemNotFound
			}
			return err
		}
		// Favor first, then the item (the FK would object otherwise).
		if _, err := repo.DeleteFavorByItem(ctx, tx, itemID); err != nil {
			return err
		}
		deleted, err := repo.DeleteListItem(ctx, tx, itemID, u.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrItemNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidateList(ctx, s.Cache)
	return nil
}
