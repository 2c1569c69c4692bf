// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Favor
// model, the fulfillment/reimbursement ledger attached to list items.
//
// Error semantics:
//   - A second favor for the same item relies on the database unique index
//     on item_id and is returned as a raw DB error. The service layer
//     translates that into a domain conflict (e.g., ErrItemFulfilled).
//   - On other DB errors (connectivity, constraints, etc.), the raw gorm
//     error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mvasila/go-grocer-backend/internal/domain"
)

// CreateFavor inserts a favor for itemID, recording byUserID as the giver
// and forUserID as the beneficiary. FulfilledAt is set once to UTC now.
//
// The item_id column is unique, enforced by the database schema. If a favor
// already exists for the item, the database returns an error which the
// service layer maps to a stable conflict error.
func CreateFavor(ctx context.Context, db *gorm.DB, itemID int64, byUserID, forUserID string, amount float64) (*domain.Favor, error) {
	f := &domain.Favor{
		Amount:      amount,
		FulfilledAt: time.Now().UTC(),
		ByUserID:    byUserID,
		ForUserID:   forUserID,
		ItemID:      itemID,
	}
	if err := db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// GetFavor fetches a favor by its id, or ErrNotFound if missing.
func GetFavor(ctx context.Context, db *gorm.DB, id int64) (*domain.Favor, error) {
	var f domain.Favor
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// UpdateFavor overwrites amount and reimbursed_at on the favor row. A nil
// reimbursedAt clears the reimbursement timestamp (moving the favor back to
// the fulfilled state); the previous timestamp is discarded, not archived.
// Returns ErrNotFound if no row was touched.
func UpdateFavor(ctx context.Context, db *gorm.DB, id int64, amount float64, reimbursedAt *time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.Favor{}).
		Where("id = ?", id).
		Updates(map[string]any{"amount": amount, "reimbursed_at": reimbursedAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteFavor removes a favor by id, reporting whether a row was deleted.
// Removing a favor returns the underlying item to the pending state.
func DeleteFavor(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	res := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Favor{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteFavorByItem removes the favor attached to itemID, if any, and
// returns the number of rows deleted (0 or 1). Used by the cascading item
// delete inside the same transaction.
func DeleteFavorByItem(ctx context.Context, db *gorm.DB, itemID int64) (int64, error) {
	res := db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Delete(&domain.Favor{})
	return res.RowsAffected, res.Error
}

// DeleteFavorsByItemIDs removes every favor attached to one of itemIDs and
// returns the number of rows deleted. Part of the cascading user delete.
func DeleteFavorsByItemIDs(ctx context.Context, db *gorm.DB, itemIDs []int64) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).
		Where("item_id IN ?", itemIDs).
		Delete(&domain.Favor{})
	return res.RowsAffected, res.Error
}

// DeleteFavorsByUser removes every favor where userID is the giver or the
// beneficiary and returns the number of rows deleted. Part of the cascading
// user delete.
func DeleteFavorsByUser(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	res := db.WithContext(ctx).
		Where("by_user_id = ? OR for_user_id = ?", userID, userID).
		Delete(&domain.Favor{})
	return res.RowsAffected, res.Error
}

// ListFavorsByUser returns favors involving userID, ordered by id ascending.
// The role filter narrows the relationship:
//
//	"given"    selects favors where the user is the giver
//	"received" selects favors where the user is the beneficiary
//	anything else selects both sides
func ListFavorsByUser(ctx context.Context, db *gorm.DB, userID, role string) ([]domain.Favor, error) {
	q := db.WithContext(ctx).Model(&domain.Favor{})
	switch role {
	case "given":
		q = q.Where("by_user_id = ?", userID)
	case "received":
		q = q.Where("for_user_id = ?", userID)
	default:
		q = q.Where("by_user_id = ? OR for_user_id = ?", userID, userID)
	}
	var out []domain.Favor
	err := q.Order("id asc").Find(&out).Error
	return out, err
}
