package repository

import (
	"context"
	"errors"

	"github.com/techchallenge/vehicle-api/internal/common/resilience"
	"github.com/techchallenge/vehicle-api/internal/user/domain"
)

// BreakerRepository fails fast with ErrCircuitOpen once the wrapped store keeps
// failing. Lookups that find nothing and duplicate inserts are answers, not
// failures, and never trip it.
type BreakerRepository struct {
	next    Repository
	breaker *resilience.CircuitBreaker
}

func NewBreakerRepository(next Repository, config resilience.CircuitBreakerConfig) *BreakerRepository {
	config.IsFailure = isStorageFailure
	return &BreakerRepository{
		next:    next,
		breaker: resilience.NewCircuitBreaker(config),
	}
}

func isStorageFailure(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrUserNotFound) &&
		!errors.Is(err, ErrEmailAlreadyExists) &&
		!errors.Is(err, context.Canceled)
}

func (r *BreakerRepository) Create(ctx context.Context, user domain.NewUser) (domain.User, error) {
	var created domain.User
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		created, err = r.next.Create(ctx, user)
		return err
	})
	return created, err
}

func (r *BreakerRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		user, err = r.next.FindByEmail(ctx, email)
		return err
	})
	return user, err
}

func (r *BreakerRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	var user domain.User
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		user, err = r.next.FindByID(ctx, id)
		return err
	})
	return user, err
}
