package repo_test

import (
	"context"
	"testing"

	"github.com/kravetsdev/staff-core/repo"
)

func TestAuditRepo_AppendAndList(t *testing.T) {
	database := newTestDB(t)
	r := repo.NewAuditRepo(database, nil)
	ctx := context.Background()

	userID := seedUser(t, database, "alice@example.com", "alice")

	r.Append(ctx, userID, "created employee 1")
	r.Append(ctx, userID, "deleted employee 1")

	trail, err := r.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(trail) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(trail))
	}
	// Newest first.
	if trail[0].Action != "deleted employee 1" || trail[1].Action != "created employee 1" {
		t.Fatalf("unexpected order: %+v", trail)
	}
	for _, e := range trail {
		if e.Username != "alice" {
			t.Fatalf("expected username alice, got %q", e.Username)
		}
		if e.Timestamp.IsZero() {
			t.Fatal("expected server-assigned timestamp")
		}
	}
}

// A failed audit write is logged and swallowed; it must not surface to
// the caller or leave a partial row.
func TestAuditRepo_Append_FireAndForget(t *testing.T) {
	database := newTestDB(t)
	r := repo.NewAuditRepo(database, nil)
	ctx := context.Background()

	// No such user: the FK violation is absorbed by Append.
	r.Append(ctx, 4242, "ghost action")

	trail, err := r.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(trail) != 0 {
		t.Fatalf("expected empty trail, got %d entries", len(trail))
	}
}
