// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the ListItem
// model, including the unfulfilled-item snapshot that feeds the shared
// shopping list and small aggregate queries used for conditional responses.
//
// Ownership is enforced in the WHERE clause of every single-item operation:
// an item that exists but belongs to a different user is indistinguishable
// from a missing item (ErrNotFound), which keeps usernames unguessable.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mvasila/go-grocer-backend/internal/domain"
)

// UnfulfilledItem is one row of the consolidation snapshot: a list item with
// no favor, paired with the username of its owner.
type UnfulfilledItem struct {
	ItemID        int64
	ItemName      string
	OwnerUsername string
}

// CreateListItem inserts a new list item for ownerID. AddedAt is set once to
// UTC now and never changes afterwards.
func CreateListItem(ctx context.Context, db *gorm.DB, ownerID, itemName string, priority int) (*domain.ListItem, error) {
	it := &domain.ListItem{
		ItemName:    itemName,
		Priority:    priority,
		AddedAt:     time.Now().UTC(),
		OwnerUserID: ownerID,
	}
	if err := db.WithContext(ctx).Create(it).Error; err != nil {
		return nil, err
	}
	return it, nil
}

// GetListItemOwned fetches the item by id, scoped to ownerID. A row owned by
// someone else returns ErrNotFound.
func GetListItemOwned(ctx context.Context, db *gorm.DB, id int64, ownerID string) (*domain.ListItem, error) {
	var it domain.ListItem
	err := db.WithContext(ctx).
		Where("id = ? AND owner_user_id = ?", id, ownerID).
		First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ListItemsByOwner returns all items on ownerID's personal list with their
// favor (fulfillment record) preloaded, ordered by id ascending.
func ListItemsByOwner(ctx context.Context, db *gorm.DB, ownerID string) ([]domain.ListItem, error) {
	var out []domain.ListItem
	err := db.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("id asc").
		Preload("Favor").
		Find(&out).Error
	return out, err
}

// ListItemIDsByOwner returns the ids of every item owned by ownerID. Used by
// the cascading user delete to remove dependent favors first.
func ListItemIDsByOwner(ctx context.Context, db *gorm.DB, ownerID string) ([]int64, error) {
	var ids []int64
	err := db.WithContext(ctx).
		Model(&domain.ListItem{}).
		Where("owner_user_id = ?", ownerID).
		Pluck("id", &ids).Error
	return ids, err
}

// UpdateListItem replaces name and priority of the item identified by id and
// owned by ownerID. If no rows are affected (item missing or foreign-owned),
// it returns ErrNotFound. The item's favor, if any, is untouched.
func UpdateListItem(ctx context.Context, db *gorm.DB, id int64, ownerID, itemName string, priority int) error {
	res := db.WithContext(ctx).
		Model(&domain.ListItem{}).
		Where("id = ? AND owner_user_id = ?", id, ownerID).
		Updates(map[string]any{"item_name": itemName, "priority": priority})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteListItem removes the item identified by id and owned by ownerID,
// reporting whether a row was deleted. The item's favor must be removed by
// the caller in the same transaction.
func DeleteListItem(ctx context.Context, db *gorm.DB, id int64, ownerID string) (bool, error) {
	res := db.WithContext(ctx).
		Where("id = ? AND owner_user_id = ?", id, ownerID).
		Delete(&domain.ListItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteItemsByOwner removes every item owned by ownerID and returns the
// number of rows deleted. Part of the cascading user delete.
func DeleteItemsByOwner(ctx context.Context, db *gorm.DB, ownerID string) (int64, error) {
	res := db.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Delete(&domain.ListItem{})
	return res.RowsAffected, res.Error
}

// UnfulfilledItems returns the snapshot of every list item that has no
// favor, joined with its owner's username, ordered by item id ascending.
// This is the sole input of the consolidation algorithm.
func UnfulfilledItems(ctx context.Context, db *gorm.DB) ([]UnfulfilledItem, error) {
	var rows []UnfulfilledItem
	err := db.WithContext(ctx).
		Model(&domain.ListItem{}).
		Select("list_items.id AS item_id, list_items.item_name AS item_name, users.username AS owner_username").
		Joins("JOIN users ON users.id = list_items.owner_user_id").
		Joins("LEFT JOIN favors ON favors.item_id = list_items.id").
		Where("favors.id IS NULL").
		Order("list_items.id asc").
		Scan(&rows).Error
	return rows, err
}

// ItemsStats returns aggregate metadata for a user's list items: the total
// number of rows and the maximum UpdatedAt timestamp among those rows.
//
// It executes two lightweight queries against the list_items table scoped to
// ownerID. When the user has no items, the returned count is 0 and
// maxUpdatedAt is nil. Used for ETag generation in the HTTP layer.
func ItemsStats(ctx context.Context, db *gorm.DB, ownerID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.ListItem{}).Where("owner_user_id = ?", ownerID)

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
