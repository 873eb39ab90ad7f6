package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/roomhub/billing/internal/domain/user"
	"github.com/roomhub/billing/internal/repo/memory"
)

func TestUsersCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUsersRepo()

	created, err := repo.Create(ctx, "a", "a@x.com", "$2a$08$hash", "A")

	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "a@x.com")

	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if got.ID != created.ID {
		t.Fatalf("lookup returned id %q, want %q", got.ID, created.ID)
	}

	// email matching is exact and case-sensitive
	_, err = repo.GetByEmail(ctx, "A@x.com")
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("case-variant lookup: got %v, want ErrNotFound", err)
	}
}

func TestUsersDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUsersRepo()

	if _, err := repo.Create(ctx, "a", "a@x.com", "h", "A"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := repo.Create(ctx, "b", "a@x.com", "h2", "B")

	if !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}

	// first registration unaffected
	got, err := repo.GetByEmail(ctx, "a@x.com")
	if err != nil || got.Username != "a" {
		t.Fatalf("first user disturbed: %+v, %v", got, err)
	}
}
