// Package services – ShoppingListService
//
// This file implements the read side of consolidation: it snapshots the
// currently-unfulfilled list items and hands them to the pure grouping
// algorithm in internal/consolidation. The operation never mutates state and
// is safe to call at any rate; an optional cache short-circuits the snapshot
// query between mutations.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/mvasila/go-grocer-backend/internal/consolidation"
	"github.com/mvasila/go-grocer-backend/internal/repo"
)

// ShoppingListService builds the consolidated shopping list.
type ShoppingListService struct {
	// DB is the database handle used for the snapshot query.
	DB *gorm.DB
	// Cache, when non-nil, serves repeated builds between mutations.
	Cache ListCache
}

// Build returns the shared shopping list: one entry per distinct item name
// among items with no favor, names ascending, item ids ascending within an
// entry, owners aligned with the ids (and not deduplicated).
//
// The snapshot is a single query, so each reported item reflects a state
// that existed during the call even while writers run concurrently.
func (s *ShoppingListService) Build(ctx context.Context) ([]consolidation.Entry, error) {
	if s.Cache != nil {
		if entries, ok := s.Cache.Get(ctx); ok {
			return entries, nil
		}
	}

	rows, err := repo.UnfulfilledItems(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	input := make([]consolidation.Row, len(rows))
	for i, r := range rows {
		input[i] = consolidation.Row{
			ItemID:        r.ItemID,
			ItemName:      r.ItemName,
			OwnerUsername: r.OwnerUsername,
		}
	}
	entries := consolidation.Consolidate(input)

	if s.Cache != nil {
		s.Cache.Set(ctx, entries)
	}
	return entries, nil
}
