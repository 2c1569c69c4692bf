package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/mvasila/go-grocer-backend/internal/domain"
	"github.com/mvasila/go-grocer-backend/internal/repo"
)

// seedFavorWorld creates alice (owner of one pending item) and bob.
func seedFavorWorld(t *testing.T, db *gorm.DB) (alice, bob *domain.User, item *domain.ListItem) {
	t.Helper()
	ctx := context.Background()
	userSvc := &UserService{DB: db}

	alice, err := userSvc.Create(ctx, "alice", "Alice", "A")
	if err != nil {
		t.Fatalf("seed alice: %v", err)
	}
	bob, err = userSvc.Create(ctx, "bob", "Bob", "B")
	if err != nil {
		t.Fatalf("seed bob: %v", err)
	}
	item, err = repo.CreateListItem(ctx, db, alice.ID, "Milk", 1)
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return alice, bob, item
}

func f64(v float64) *float64 { return &v }

func TestFavor_Create_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := &FavorService{DB: db}
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, "bob", "alice", nil); !errors.Is(err, ErrMissingAmount) {
		t.Fatalf("expected ErrMissingAmount, got %v", err)
	}
	if _, err := svc.Create(ctx, 1, "bob", "alice", f64(-1)); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestFavor_Create_UserAndItemChecks(t *testing.T) {
	db := newTestDB(t)
	svc := &FavorService{DB: db}
	ctx := context.Background()
	_, _, item := seedFavorWorld(t, db)

	if _, err := svc.Create(ctx, item.ID, "ghost", "alice", f64(1)); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown giver: expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, item.ID, "bob", "ghost", f64(1)); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown beneficiary: expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, 9999, "bob", "alice", f64(1)); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("missing item: expected ErrItemNotFound, got %v", err)
	}
	// The item belongs to alice; naming bob as beneficiary must not match it.
	if _, err := svc.Create(ctx, item.ID, "alice", "bob", f64(1)); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("wrong owner: expected ErrItemNotFound, got %v", err)
	}
}

func TestFavor_Create_Success_And_Conflict(t *testing.T) {
	db := newTestDB(t)
	cache := &fakeListCache{}
	svc := &FavorService{DB: db, Cache: cache}
	ctx := context.Background()
	alice, bob, item := seedFavorWorld(t, db)

	f, err := svc.Create(ctx, item.ID, "bob", "alice", f64(3.49))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if f.ByUserID != bob.ID || f.ForUserID != alice.ID || f.ItemID != item.ID || f.Amount != 3.49 {
		t.Fatalf("unexpected favor: %+v", f)
	}
	if f.Reimbursed() {
		t.Fatalf("new favor must start unreimbursed")
	}
	if cache.invalidates != 1 {
		t.Fatalf("expected cache invalidation on create, got %d", cache.invalidates)
	}

	// One favor per item.
	if _, err := svc.Create(ctx, item.ID, "alice", "alice", f64(1)); !errors.Is(err, ErrItemFulfilled) {
		t.Fatalf("expected ErrItemFulfilled, got %v", err)
	}
}

func TestFavor_Create_SelfFavorAllowed(t *testing.T) {
	db := newTestDB(t)
	svc := &FavorService{DB: db}
	ctx := context.Background()
	alice, _, item := seedFavorWorld(t, db)

	f, err := svc.Create(ctx, item.ID, "alice", "alice", f64(2))
	if err != nil {
		t.Fatalf("self favor should be permitted: %v", err)
	}
	if f.ByUserID != alice.ID || f.ForUserID != alice.ID {
		t.Fatalf("unexpected parties: %+v", f)
	}
}

func TestFavor_Update_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := &FavorService{DB: db}
	ctx := context.Background()

	tr := true
	if _, err := svc.Update(ctx, 1, nil, f64(1)); !errors.Is(err, ErrMissingReimbursed) {
		t.Fatalf("expected ErrMissingReimbursed, got %v", err)
	}
	if _, err := svc.Update(ctx, 1, &tr, nil); !errors.Is(err, ErrMissingAmount) {
		t.Fatalf("expected ErrMissingAmount, got %v", err)
	}
	if _, err := svc.Update(ctx, 1, &tr, f64(-2)); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	if _, err := svc.Update(ctx, 9999, &tr, f64(1)); !errors.Is(err, ErrFavorNotFound) {
		t.Fatalf("expected ErrFavorNotFound, got %v", err)
	}
}

func TestFavor_Update_ToggleReimbursement(t *testing.T) {
	db := newTestDB(t)
	svc := &FavorService{DB: db}
	ctx := context.Background()
	_, _, item := seedFavorWorld(t, db)

	f, err := svc.Create(ctx, item.ID, "bob", "alice", f64(3))
	if err != nil {
		t.Fatalf("seed favor: %v", err)
	}

	tr, fa := true, false

	got, err := svc.Update(ctx, f.ID, &tr, f64(4))
	if err != nil {
		t.Fatalf("mark reimbursed: %v", err)
	}
	if !got.Reimbursed() || got.Amount != 4 {
		t.Fatalf("reimbursement not recorded: %+v", got)
	}
	firstStamp := *got.ReimbursedAt

	// Clearing discards the timestamp entirely.
	got, err = svc.Update(ctx, f.ID, &fa, f64(4))
	if err != nil {
		t.Fatalf("clear reimbursed: %v", err)
	}
	if got.Reimbursed() || got.ReimbursedAt != nil {
		t.Fatalf("reimbursement should be cleared: %+v", got)
	}

	// Re-marking produces a fresh timestamp, not the archived one.
	time.Sleep(10 * time.Millisecond)
	got, err = svc.Update(ctx, f.ID, &tr, f64(4))
	if err != nil {
		t.Fatalf("re-mark reimbursed: %v", err)
	}
	if got.ReimbursedAt == nil || !got.ReimbursedAt.After(firstStamp) {
		t.Fatalf("expected fresh timestamp after re-toggle: %v vs %v", got.ReimbursedAt, firstStamp)
	}
}

func TestFavor_Get_List_Delete(t *testing.T) {
	db := newTestDB(t)
	cache := &fakeListCache{}
	svc := &FavorService{DB: db, Cache: cache}
	ctx := context.Background()
	alice, bob, item := seedFavorWorld(t, db)

	if _, err := svc.Get(ctx, 9999); !errors.Is(err, ErrFavorNotFound) {
		t.Fatalf("expected ErrFavorNotFound, got %v", err)
	}
	if _, err := svc.List(ctx, "ghost", ""); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	f, _ := svc.Create(ctx, item.ID, "bob", "alice", f64(3))

	got, err := svc.Get(ctx, f.ID)
	if err != nil || got.ID != f.ID {
		t.Fatalf("Get = %+v, %v", got, err)
	}

	given, err := svc.List(ctx, "bob", "given")
	if err != nil || len(given) != 1 || given[0].ByUserID != bob.ID {
		t.Fatalf("given = %+v, %v", given, err)
	}
	received, err := svc.List(ctx, "alice", "received")
	if err != nil || len(received) != 1 || received[0].ForUserID != alice.ID {
		t.Fatalf("received = %+v, %v", received, err)
	}
	if ng, _ := svc.List(ctx, "alice", "given"); len(ng) != 0 {
		t.Fatalf("alice gave nothing, got %+v", ng)
	}

	if err := svc.Delete(ctx, f.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, f.ID); !errors.Is(err, ErrFavorNotFound) {
		t.Fatalf("second delete: expected ErrFavorNotFound, got %v", err)
	}
	// Invalidations: create + delete, but not the reads.
	if cache.invalidates != 2 {
		t.Fatalf("expected two invalidations, got %d", cache.invalidates)
	}
}
