// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Group model.
//
// Groups carry a caller-supplied primary key, so duplicate creation surfaces
// as a primary-key violation rather than a generated-ID collision. The raw DB
// error is propagated for the service layer to translate into a conflict.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mvasila/go-grocer-backend/internal/domain"
)

// CreateGroup inserts a new Group row with the caller-supplied id.
// CreatedAt is set to UTC. A duplicate id trips the primary key constraint.
func CreateGroup(ctx context.Context, db *gorm.DB, id, name string) (*domain.Group, error) {
	g := &domain.Group{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

// GetGroup fetches a group by its id, or ErrNotFound if missing.
func GetGroup(ctx context.Context, db *gorm.DB, id string) (*domain.Group, error) {
	var g domain.Group
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GroupExists reports whether a group with the given id exists without
// loading the row.
func GroupExists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Group{}).
		Where("id = ?", id).
		Count(&n).Error
	return n > 0, err
}

// ListGroupMembers returns the users currently assigned to groupID, ordered
// by username ascending. An empty slice means the group has no members.
func ListGroupMembers(ctx context.Context, db *gorm.DB, groupID string) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("username asc").
		Find(&out).Error
	return out, err
}
