package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mvasila/go-grocer-backend/internal/domain"
)

func newUserRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("user_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestCreateUser_Error_NoTable(t *testing.T) {
	db := newUserRepoDB(t /* no migrations */)
	u, err := CreateUser(context.Background(), db, "alice", "Alice", "Smith")
	if err == nil || u != nil {
		t.Fatalf("expected error creating without table, got user=%v err=%v", u, err)
	}
}

func TestCreateUser_Success_PersistsAndSetsFields(t *testing.T) {
	db := newUserRepoDB(t, &domain.Group{}, &domain.User{})

	start := time.Now().UTC().Add(-time.Minute)
	u, err := CreateUser(context.Background(), db, "alice", "Alice", "Smith")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" || u.Username != "alice" || u.FirstName != "Alice" || u.LastName != "Smith" {
		t.Fatalf("unexpected User fields: %+v", u)
	}
	if u.GroupID != nil || u.Color != nil {
		t.Fatalf("new user should have nil group and color: %+v", u)
	}
	if u.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt seems unset/really old: %v", u.CreatedAt)
	}
	// round-trip
	var got domain.User
	if err := db.First(&got, "id = ?", u.ID).Error; err != nil {
		t.Fatalf("load created user: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestCreateUser_DuplicateUsername_Errors(t *testing.T) {
	db := newUserRepoDB(t, &domain.Group{}, &domain.User{})

	if _, err := CreateUser(context.Background(), db, "alice", "Alice", "Smith"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := CreateUser(context.Background(), db, "alice", "Other", "Person"); err == nil {
		t.Fatalf("expected unique violation on duplicate username")
	}
}

func TestGetUserByUsername(t *testing.T) {
	db := newUserRepoDB(t, &domain.Group{}, &domain.User{})

	seed, err := CreateUser(context.Background(), db, "bob", "Bob", "Jones")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := GetUserByUsername(context.Background(), db, "bob")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.ID != seed.ID {
		t.Fatalf("got %q want %q", got.ID, seed.ID)
	}

	if _, err := GetUserByUsername(context.Background(), db, "ghost"); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestCountUsers_And_ListUsersPage(t *testing.T) {
	db := newUserRepoDB(t, &domain.Group{}, &domain.User{})
	ctx := context.Background()

	for _, un := range []string{"carol", "alice", "bob"} {
		if _, err := CreateUser(ctx, db, un, "F", "L"); err != nil {
			t.Fatalf("seed %s: %v", un, err)
		}
	}

	total, err := CountUsers(ctx, db)
	if err != nil || total != 3 {
		t.Fatalf("CountUsers = %d, %v; want 3", total, err)
	}

	// Ordered by username asc, paginated.
	page1, err := ListUsersPage(ctx, db, 0, 2)
	if err != nil {
		t.Fatalf("ListUsersPage: %v", err)
	}
	if len(page1) != 2 || page1[0].Username != "alice" || page1[1].Username != "bob" {
		t.Fatalf("page1 unexpected: %+v", page1)
	}
	page2, err := ListUsersPage(ctx, db, 2, 2)
	if err != nil {
		t.Fatalf("ListUsersPage offset: %v", err)
	}
	if len(page2) != 1 || page2[0].Username != "carol" {
		t.Fatalf("page2 unexpected: %+v", page2)
	}
}

func TestUpdateUserFields_SparseAndClear(t *testing.T) {
	db := newUserRepoDB(t, &domain.Group{}, &domain.User{})
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "dora", "Dora", "Lee")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := CreateGroup(ctx, db, "flat-7b", "Flat 7B"); err != nil {
		t.Fatalf("seed group: %v", err)
	}

	// Set first name, color, and group in one sparse update.
	err = UpdateUserFields(ctx, db, u.ID, map[string]any{
		"first_name": "Dorothea",
		"color":      "#ff0000",
		"group_id":   "flat-7b",
	})
	if err != nil {
		t.Fatalf("UpdateUserFields: %v", err)
	}

	got, err := GetUserByUsername(ctx, db, "dora")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.FirstName != "Dorothea" || got.LastName != "Lee" {
		t.Fatalf("names unexpected: %+v", got)
	}
	if got.Color == nil || *got.Color != "#ff0000" {
		t.Fatalf("color unexpected: %+v", got.Color)
	}
	if got.GroupID == nil || *got.GroupID != "flat-7b" {
		t.Fatalf("group unexpected: %+v", got.GroupID)
	}

	// Clearing group membership with an explicit nil.
	if err := UpdateUserFields(ctx, db, u.ID, map[string]any{"group_id": nil}); err != nil {
		t.Fatalf("clear group: %v", err)
	}
	got, _ = GetUserByUsername(ctx, db, "dora")
	if got.GroupID != nil {
		t.Fatalf("group should be cleared, got %v", *got.GroupID)
	}
}

func TestUpdateUserFields_MissingUser_NotFound(t *testing.T) {
	db := newUserRepoDB(t, &domain.Group{}, &domain.User{})
	err := UpdateUserFields(context.Background(), db, "nope", map[string]any{"first_name": "X"})
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDeleteUser_ReportsDeletion(t *testing.T) {
	db := newUserRepoDB(t, &domain.Group{}, &domain.User{})
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "erin", "Erin", "Moss")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	deleted, err := DeleteUser(ctx, db, u.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteUser = %v, %v; want true, nil", deleted, err)
	}
	deleted, err = DeleteUser(ctx, db, u.ID)
	if err != nil || deleted {
		t.Fatalf("second DeleteUser = %v, %v; want false, nil", deleted, err)
	}
}

func TestAssignUsersToGroup(t *testing.T) {
	db := newUserRepoDB(t, &domain.Group{}, &domain.User{})
	ctx := context.Background()

	if _, err := CreateGroup(ctx, db, "g1", "Group One"); err != nil {
		t.Fatalf("seed group: %v", err)
	}
	a, _ := CreateUser(ctx, db, "a", "A", "A")
	b, _ := CreateUser(ctx, db, "b", "B", "B")

	n, err := AssignUsersToGroup(ctx, db, "g1", []string{a.ID, b.ID})
	if err != nil || n != 2 {
		t.Fatalf("AssignUsersToGroup = %d, %v; want 2", n, err)
	}

	// Empty slice is a no-op.
	n, err = AssignUsersToGroup(ctx, db, "g1", nil)
	if err != nil || n != 0 {
		t.Fatalf("empty AssignUsersToGroup = %d, %v; want 0", n, err)
	}

	members, err := ListGroupMembers(ctx, db, "g1")
	if err != nil || len(members) != 2 {
		t.Fatalf("ListGroupMembers = %+v, %v", members, err)
	}
	if members[0].Username != "a" || members[1].Username != "b" {
		t.Fatalf("member order unexpected: %+v", members)
	}
}
