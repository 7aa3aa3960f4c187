package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	commonerrors "github.com/techchallenge/vehicle-api/internal/common/errors"
	"github.com/techchallenge/vehicle-api/internal/common/resilience"
	"github.com/techchallenge/vehicle-api/internal/user/domain"
)

type mockRepository struct {
	createFunc      func(ctx context.Context, user domain.NewUser) (domain.User, error)
	findByEmailFunc func(ctx context.Context, email string) (domain.User, error)
	findByIDFunc    func(ctx context.Context, id domain.ID) (domain.User, error)
	calls           int
}

func (m *mockRepository) Create(ctx context.Context, user domain.NewUser) (domain.User, error) {
	m.calls++
	return m.createFunc(ctx, user)
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	m.calls++
	return m.findByEmailFunc(ctx, email)
}

func (m *mockRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	m.calls++
	return m.findByIDFunc(ctx, id)
}

func breakerConfig() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Threshold:  2,
		Timeout:    time.Second,
		ResetAfter: time.Minute,
	}
}

func TestBreakerRepository_OpensOnStorageFailures(t *testing.T) {
	storageErr := errors.New("connection refused")
	next := &mockRepository{
		findByEmailFunc: func(context.Context, string) (domain.User, error) {
			return domain.User{}, storageErr
		},
	}
	repo := NewBreakerRepository(next, breakerConfig())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := repo.FindByEmail(ctx, "a@x.com"); !errors.Is(err, storageErr) {
			t.Fatalf("call %d: expected storage error, got %v", i, err)
		}
	}

	_, err := repo.FindByEmail(ctx, "a@x.com")
	if !errors.Is(err, commonerrors.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if next.calls != 2 {
		t.Errorf("expected the open circuit to skip the store, got %d calls", next.calls)
	}
}

func TestBreakerRepository_NotFoundAndDuplicateDoNotTrip(t *testing.T) {
	next := &mockRepository{
		findByIDFunc: func(context.Context, domain.ID) (domain.User, error) {
			return domain.User{}, ErrUserNotFound
		},
		createFunc: func(context.Context, domain.NewUser) (domain.User, error) {
			return domain.User{}, ErrEmailAlreadyExists
		},
	}
	repo := NewBreakerRepository(next, breakerConfig())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := repo.FindByID(ctx, 1); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
		if _, err := repo.Create(ctx, domain.NewUser{Email: "a@x.com"}); !errors.Is(err, ErrEmailAlreadyExists) {
			t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
		}
	}
	if next.calls != 10 {
		t.Errorf("expected every call to reach the store, got %d", next.calls)
	}
}

func TestBreakerRepository_PassesResults(t *testing.T) {
	want := domain.User{ID: 7, Email: "a@x.com", IsActive: true}
	next := &mockRepository{
		createFunc: func(_ context.Context, u domain.NewUser) (domain.User, error) {
			return domain.User{ID: 7, Email: u.Email, IsActive: true}, nil
		},
	}
	repo := NewBreakerRepository(next, breakerConfig())

	got, err := repo.Create(context.Background(), domain.NewUser{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}
