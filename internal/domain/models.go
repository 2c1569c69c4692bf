// Package domain defines the persistence models for users, groups, list
// items, and favors. These types are mapped with GORM and form the core data
// layer of the shared-shopping-list application.
package domain

import (
	"time"
)

// User represents a member of the household/group sharing shopping lists.
//
// Fields:
//   - ID: stable UUID primary key (char(36)), system-assigned and immutable.
//   - Username: unique, immutable business key used by the API to address users.
//   - FirstName / LastName: display names, required at creation.
//   - Color: optional UI accent color.
//   - GroupID: optional reference to the group the user belongs to. A nil
//     GroupID means the user is unaffiliated.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type User struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Username  string    `json:"username"   gorm:"type:varchar(64);not null;uniqueIndex:ux_users_username"`
	FirstName string    `json:"first_name" gorm:"type:varchar(128);not null"`
	LastName  string    `json:"last_name"  gorm:"type:varchar(128);not null"`
	Color     *string   `json:"color,omitempty"    gorm:"type:varchar(32)"`
	GroupID   *string   `json:"group_id,omitempty" gorm:"type:varchar(64);index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Group is the optional parent group. Removing a group detaches its
	// members rather than deleting them.
	Group *Group `json:"-" gorm:"foreignKey:GroupID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Group represents a named collection of users who shop together. The ID is
// a caller-supplied business key (e.g. "flat-7b"), unique across all groups.
type Group struct {
	ID        string    `json:"id"   gorm:"type:varchar(64);primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Group.
func (Group) TableName() string { return "groups" }

// ListItem is a single entry on one user's personal shopping list.
//
// Fields:
//   - ID: autoincrement primary key; consolidation orders by it.
//   - ItemName: free-text name; grouping for the shared list is byte-exact
//     on this string (no trimming or case folding).
//   - Priority: 1 (high) to 3 (low), enforced by a DB check constraint.
//   - AddedAt: set once at creation, never updated afterwards.
//   - OwnerUserID: the user whose list this item is on; immutable.
//   - Favor: the fulfillment record, if another member already bought the
//     item. An item has at most one favor (unique index on favors.item_id).
type ListItem struct {
	ID          int64     `json:"id"            gorm:"primaryKey;autoIncrement"`
	ItemName    string    `json:"item_name"     gorm:"type:text;not null"`
	Priority    int       `json:"priority"      gorm:"not null;check:priority IN (1,2,3)"`
	AddedAt     time.Time `json:"added_at"`
	OwnerUserID string    `json:"owner_user_id" gorm:"type:char(36);not null;index:idx_items_owner"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Owner is the user this item belongs to. Items are cascade-deleted
	// if their owner is removed (the service layer deletes them explicitly
	// inside the same transaction; the FK is the backstop).
	Owner User   `json:"-" gorm:"foreignKey:OwnerUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Favor *Favor `json:"favor,omitempty" gorm:"foreignKey:ItemID;references:ID"`
}

// TableName returns the database table name for ListItem.
func (ListItem) TableName() string { return "list_items" }

// Favor records that one member (ByUserID) bought a specific list item on
// behalf of its owner (ForUserID). Its existence marks the item as
// fulfilled; a non-nil ReimbursedAt marks the favor as paid back.
//
// The unique index on ItemID enforces the one-favor-per-item invariant at
// commit time, so two concurrent creators for the same item cannot both
// succeed.
type Favor struct {
	ID           int64      `json:"id"     gorm:"primaryKey;autoIncrement"`
	Amount       float64    `json:"amount" gorm:"not null;check:amount >= 0"`
	FulfilledAt  time.Time  `json:"fulfilled_at"`
	ReimbursedAt *time.Time `json:"reimbursed_at,omitempty"`
	ByUserID     string     `json:"by_user_id"  gorm:"type:char(36);not null;index:idx_favors_by"`
	ForUserID    string     `json:"for_user_id" gorm:"type:char(36);not null;index:idx_favors_for"`
	ItemID       int64      `json:"item_id"     gorm:"not null;uniqueIndex:ux_favors_item"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// By is the giver, For the beneficiary. Favors referencing a removed
	// user are deleted in the same transaction as the user (FK backstop).
	By   User     `json:"-" gorm:"foreignKey:ByUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	For  User     `json:"-" gorm:"foreignKey:ForUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Item ListItem `json:"-" gorm:"foreignKey:ItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Favor.
func (Favor) TableName() string { return "favors" }

// Reimbursed reports whether the favor has been paid back.
func (f *Favor) Reimbursed() bool { return f.ReimbursedAt != nil }
