package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mvasila/go-grocer-backend/internal/repo"
)

func TestGroup_Create_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := &GroupService{DB: db}
	ctx := context.Background()

	if _, _, err := svc.Create(ctx, "  ", "Name", nil); !errors.Is(err, ErrEmptyGroupID) {
		t.Fatalf("blank id: expected ErrEmptyGroupID, got %v", err)
	}
	if _, _, err := svc.Create(ctx, "g1", "   ", nil); !errors.Is(err, ErrEmptyGroupID) {
		t.Fatalf("blank name: expected ErrEmptyGroupID, got %v", err)
	}
}

func TestGroup_Create_Success_WithMembers(t *testing.T) {
	db := newTestDB(t)
	userSvc := &UserService{DB: db}
	svc := &GroupService{DB: db}
	ctx := context.Background()

	if _, err := userSvc.Create(ctx, "alice", "A", "A"); err != nil {
		t.Fatalf("seed alice: %v", err)
	}
	if _, err := userSvc.Create(ctx, "bob", "B", "B"); err != nil {
		t.Fatalf("seed bob: %v", err)
	}

	g, members, err := svc.Create(ctx, "flat-7b", "Flat 7B", []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID != "flat-7b" || g.Name != "Flat 7B" {
		t.Fatalf("unexpected group: %+v", g)
	}
	if len(members) != 2 || members[0] != "alice" || members[1] != "bob" {
		t.Fatalf("unexpected members: %v", members)
	}

	// Membership is persisted on the users.
	u, _ := userSvc.Get(ctx, "alice")
	if u.GroupID == nil || *u.GroupID != "flat-7b" {
		t.Fatalf("alice not assigned: %+v", u.GroupID)
	}
}

func TestGroup_Create_UnknownMember_RollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	userSvc := &UserService{DB: db}
	svc := &GroupService{DB: db}
	ctx := context.Background()

	if _, err := userSvc.Create(ctx, "alice", "A", "A"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, _, err := svc.Create(ctx, "g1", "Group", []string{"alice", "ghost"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	// No group, no membership change.
	if ok, _ := repo.GroupExists(ctx, db, "g1"); ok {
		t.Fatalf("group must not survive a failed create")
	}
	u, _ := userSvc.Get(ctx, "alice")
	if u.GroupID != nil {
		t.Fatalf("alice must stay unaffiliated, got %v", *u.GroupID)
	}
}

func TestGroup_Create_DuplicateID(t *testing.T) {
	db := newTestDB(t)
	svc := &GroupService{DB: db}
	ctx := context.Background()

	if _, _, err := svc.Create(ctx, "g1", "First", nil); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, _, err := svc.Create(ctx, "g1", "Second", nil); !errors.Is(err, ErrGroupExists) {
		t.Fatalf("expected ErrGroupExists, got %v", err)
	}
}

func TestGroup_Get(t *testing.T) {
	db := newTestDB(t)
	userSvc := &UserService{DB: db}
	svc := &GroupService{DB: db}
	ctx := context.Background()

	if _, _, err := svc.Get(ctx, "missing"); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}

	_, _ = userSvc.Create(ctx, "zoe", "Z", "Z")
	_, _ = userSvc.Create(ctx, "amy", "A", "A")
	if _, _, err := svc.Create(ctx, "g1", "Group One", []string{"zoe", "amy"}); err != nil {
		t.Fatalf("seed group: %v", err)
	}

	g, members, err := svc.Get(ctx, "g1")
	if err != nil || g.Name != "Group One" {
		t.Fatalf("Get = %+v, %v", g, err)
	}
	if len(members) != 2 || members[0].Username != "amy" || members[1].Username != "zoe" {
		t.Fatalf("members must be username ascending: %+v", members)
	}
}
