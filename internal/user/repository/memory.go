package repository

import (
	"context"
	"sync"

	"github.com/techchallenge/vehicle-api/internal/common/clock"
	"github.com/techchallenge/vehicle-api/internal/user/domain"
)

// MemoryRepository is a process-local Repository used by tests and local runs
// without a database. Email uniqueness is enforced under the same lock as the
// insert.
type MemoryRepository struct {
	mu      sync.RWMutex
	clock   clock.Clock
	nextID  domain.ID
	byID    map[domain.ID]domain.User
	byEmail map[string]domain.ID
}

func NewMemoryRepository(clk clock.Clock) *MemoryRepository {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &MemoryRepository{
		clock:   clk,
		byID:    make(map[domain.ID]domain.User),
		byEmail: make(map[string]domain.ID),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user domain.NewUser) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return domain.User{}, ErrEmailAlreadyExists
	}

	r.nextID++
	created := domain.User{
		ID:           r.nextID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		FullName:     copyString(user.FullName),
		IsActive:     true,
		CreatedAt:    r.clock.Now(),
	}
	r.byID[created.ID] = created
	r.byEmail[created.Email] = created.ID
	return cloneUser(created), nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *MemoryRepository) SetActive(ctx context.Context, id domain.ID, active bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	user.IsActive = active
	r.byID[id] = user
	return nil
}

func cloneUser(u domain.User) domain.User {
	u.FullName = copyString(u.FullName)
	return u
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
