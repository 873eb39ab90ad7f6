package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roomhub/billing/internal/domain/user"
)

// UsersRepo is a map-backed credential store used by tests and local runs
// without postgres.
type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.User // keyed by id
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[string]user.User),
	}
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		// exact match, case-sensitive
		if u.Email == email {
			return u, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) Create(ctx context.Context, username, email, passwordHash, name string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.items {
		if u.Email == email {
			return user.User{}, user.ErrEmailTaken
		}
	}

	now := time.Now().UTC()

	u := user.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.items[u.ID] = u

	return u, nil
}
