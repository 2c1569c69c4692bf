// Service contracts and handler wiring for the public API.
//
// Handlers are transport-thin: they validate input, delegate to application
// services, and translate domain/service errors into HTTP results. Each
// service dependency is an interface so transport concerns stay separate
// from business logic.
package handlers

import (
	"context"

	"github.com/mvasila/go-grocer-backend/internal/consolidation"
	"github.com/mvasila/go-grocer-backend/internal/domain"
)

// UserService defines user lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type UserService interface {
	// Create registers a new user under a unique username.
	Create(ctx context.Context, username, firstName, lastName string) (*domain.User, error)
	// Get returns the user addressed by username.
	Get(ctx context.Context, username string) (*domain.User, error)
	// ListPage returns a page of users and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.User, int64, error)
	// Update applies a sparse patch to the user.
	Update(ctx context.Context, username string, patch domain.UserPatch) (*domain.User, error)
	// Delete removes the user and cascades to items and favors, returning
	// the counts of removed items and favors.
	Delete(ctx context.Context, username string) (itemsRemoved, favorsRemoved int64, err error)
}

// GroupService defines group operations consumed by HTTP handlers.
type GroupService interface {
	// Create registers a group and atomically assigns the listed members.
	Create(ctx context.Context, id, name string, memberUsernames []string) (*domain.Group, []string, error)
	// Get returns the group and its current members.
	Get(ctx context.Context, id string) (*domain.Group, []domain.User, error)
}

// ItemService defines personal list item operations consumed by HTTP handlers.
type ItemService interface {
	// Create adds an item to the user's list.
	Create(ctx context.Context, ownerUsername, itemName string, priority int) (*domain.ListItem, error)
	// List returns the user's items with fulfillment status.
	List(ctx context.Context, ownerUsername string) ([]domain.ListItem, error)
	// Update replaces an item's name and priority.
	Update(ctx context.Context, ownerUsername string, itemID int64, itemName string, priority int) (*domain.ListItem, error)
	// Delete removes an item and its favor, if any.
	Delete(ctx context.Context, ownerUsername string, itemID int64) error
}

// FavorService defines favor ledger operations consumed by HTTP handlers.
type FavorService interface {
	// Create marks an item fulfilled by recording who bought it for whom.
	Create(ctx context.Context, itemID int64, byUsername, forUsername string, amount *float64) (*domain.Favor, error)
	// Update overwrites amount and reimbursement state.
	Update(ctx context.Context, favorID int64, reimbursed *bool, amount *float64) (*domain.Favor, error)
	// Get returns the favor addressed by id.
	Get(ctx context.Context, favorID int64) (*domain.Favor, error)
	// List returns favors involving a user, optionally filtered by role.
	List(ctx context.Context, username, role string) ([]domain.Favor, error)
	// Delete removes a favor, returning its item to the pending state.
	Delete(ctx context.Context, favorID int64) error
}

// ShoppingListService builds the consolidated shopping list.
type ShoppingListService interface {
	// Build groups all unfulfilled items by exact name.
	Build(ctx context.Context) ([]consolidation.Entry, error)
}

// Handlers groups HTTP endpoints for users, groups, items, favors, and the
// shared shopping list.
type Handlers struct {
	userSvc  UserService
	groupSvc GroupService
	itemSvc  ItemService
	favorSvc FavorService
	listSvc  ShoppingListService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(userSvc UserService, groupSvc GroupService, itemSvc ItemService, favorSvc FavorService, listSvc ShoppingListService) *Handlers {
	return &Handlers{
		userSvc:  userSvc,
		groupSvc: groupSvc,
		itemSvc:  itemSvc,
		favorSvc: favorSvc,
		listSvc:  listSvc,
	}
}
