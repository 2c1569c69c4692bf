// Package services – GroupService
//
// This file implements the GroupService, which creates groups with an
// optional initial member list and reads a group together with its members.
// Group creation is all-or-nothing: when any listed username is unknown, no
// group is created and no member assignment survives.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mvasila/go-grocer-backend/internal/domain"
	"github.com/mvasila/go-grocer-backend/internal/repo"
)

// GroupService implements the use-cases around groups.
type GroupService struct {
	// DB is the database handle used for all group operations.
	DB *gorm.DB
}

// Create registers a new group under the caller-supplied id and atomically
// assigns every user in memberUsernames to it.
//
// Semantics and validation:
//   - id and name must be non-blank; otherwise ErrEmptyGroupID.
//   - Every listed username must exist; otherwise ErrGroupNotFound is NOT
//     used. The miss is a user miss, ErrUserNotFound, and the transaction
//     rolls back leaving no group and no membership change behind.
//   - A duplicate id yields ErrGroupExists, whether caught by the pre-check
//     inside the transaction or by the primary-key constraint at commit.
//
// It returns the created group and the usernames actually assigned.
func (s *GroupService) Create(ctx context.Context, id, name string, memberUsernames []string) (*domain.Group, []string, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(name) == "" {
		return nil, nil, ErrEmptyGroupID
	}

	var (
		group   *domain.Group
		members []string
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Resolve all members first: NotFound must leave zero effects.
		userIDs := make([]string, 0, len(memberUsernames))
		members = members[:0]
		for _, username := range memberUsernames {
			u, err := repo.GetUserByUsername(ctx, tx, username)
			if err != nil {
				if isNotFound(err) {
					return ErrUserNotFound
				}
				return err
			}
			userIDs = append(userIDs, u.ID)
			members = append(members, u.Username)
		}

		g, err := repo.CreateGroup(ctx, tx, id, name)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
				return ErrGroupExists
			}
			return err
		}
		group = g

		n, err := repo.AssignUsersToGroup(ctx, tx, g.ID, userIDs)
		if err != nil {
			return err
		}
		if n != int64(len(userIDs)) {
			// A member vanished between resolution and assignment.
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return group, members, nil
}

// Get returns the group addressed by id together with its current members,
// or ErrGroupNotFound.
func (s *GroupService) Get(ctx context.Context, id string) (*domain.Group, []domain.User, error) {
	g, err := repo.GetGroup(ctx, s.DB, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, ErrGroupNotFound
		}
		return nil, nil, err
	}
	members, err := repo.ListGroupMembers(ctx, s.DB, id)
	if err != nil {
		return nil, nil, err
	}
	return g, members, nil
}
