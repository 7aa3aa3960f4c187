package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/techchallenge/vehicle-api/internal/auth/service"
	"github.com/techchallenge/vehicle-api/internal/common/clock"
	"github.com/techchallenge/vehicle-api/internal/common/logger"
	userdomain "github.com/techchallenge/vehicle-api/internal/user/domain"
	userrepo "github.com/techchallenge/vehicle-api/internal/user/repository"
)

type mockUserRepo struct {
	createFunc      func(ctx context.Context, user userdomain.NewUser) (userdomain.User, error)
	findByEmailFunc func(ctx context.Context, email string) (userdomain.User, error)
	findByIDFunc    func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
	createCalls     int
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.NewUser) (userdomain.User, error) {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return userdomain.User{ID: 1, Email: user.Email, PasswordHash: user.PasswordHash, FullName: user.FullName, IsActive: true}, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

type mockHasher struct {
	hashFunc    func(plaintext string) (string, error)
	verifyFunc  func(plaintext, hashed string) bool
	hashCalls   int
	verifyCalls int
}

func (m *mockHasher) Hash(plaintext string) (string, error) {
	m.hashCalls++
	if m.hashFunc != nil {
		return m.hashFunc(plaintext)
	}
	return "hashed:" + plaintext, nil
}

func (m *mockHasher) Verify(plaintext, hashed string) bool {
	m.verifyCalls++
	if m.verifyFunc != nil {
		return m.verifyFunc(plaintext, hashed)
	}
	return hashed == "hashed:"+plaintext
}

type mockTokens struct {
	issueFunc  func(subjectID int64, now time.Time) (string, error)
	verifyFunc func(token string, now time.Time) (int64, error)
}

func (m *mockTokens) Issue(subjectID int64, now time.Time) (string, error) {
	if m.issueFunc != nil {
		return m.issueFunc(subjectID, now)
	}
	return "token", nil
}

func (m *mockTokens) Verify(token string, now time.Time) (int64, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(token, now)
	}
	return 0, errors.New("invalid token")
}

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "test", "debug")
}

func setupAuthService(t *testing.T) (*service.AuthService, *mockUserRepo, *mockHasher, *mockTokens, *clock.MockClock) {
	t.Helper()
	repo := &mockUserRepo{}
	hasher := &mockHasher{}
	tokens := &mockTokens{}
	clk := clock.NewMockClock(testNow)
	return service.NewAuthService(repo, hasher, tokens, clk, testLogger()), repo, hasher, tokens, clk
}

func setupAuthenticator(t *testing.T) (*service.Authenticator, *mockUserRepo, *mockTokens, *clock.MockClock) {
	t.Helper()
	repo := &mockUserRepo{}
	tokens := &mockTokens{}
	clk := clock.NewMockClock(testNow)
	return service.NewAuthenticator(repo, tokens, clk, testLogger()), repo, tokens, clk
}

func strPtr(s string) *string { return &s }
