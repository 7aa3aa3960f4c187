package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/techchallenge/vehicle-api/internal/auth/service"
	commonerrors "github.com/techchallenge/vehicle-api/internal/common/errors"
	"github.com/techchallenge/vehicle-api/internal/common/jwtverify"
	userdomain "github.com/techchallenge/vehicle-api/internal/user/domain"
)

func TestAuthenticator_Success(t *testing.T) {
	auth, repo, tokens, clk := setupAuthenticator(t)

	tokens.verifyFunc = func(token string, now time.Time) (int64, error) {
		if token != "good" {
			t.Errorf("expected token good, got %q", token)
		}
		if !now.Equal(clk.Now()) {
			t.Errorf("expected verification at %s, got %s", clk.Now(), now)
		}
		return 7, nil
	}
	repo.findByIDFunc = func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
		return userdomain.User{ID: id, Email: "a@x.com", IsActive: true}, nil
	}

	user, err := auth.Authenticate(context.Background(), "Bearer good")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != 7 || user.Email != "a@x.com" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestAuthenticator_NoCredential(t *testing.T) {
	auth, _, tokens, _ := setupAuthenticator(t)

	tokens.verifyFunc = func(string, time.Time) (int64, error) {
		t.Error("verify must not be called without a bearer token")
		return 0, nil
	}

	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic dXNlcjpwYXNz"} {
		_, err := auth.Authenticate(context.Background(), header)
		if !errors.Is(err, service.ErrNotAuthenticated) {
			t.Errorf("header %q: expected ErrNotAuthenticated, got %v", header, err)
		}
	}
}

func TestAuthenticator_InvalidToken(t *testing.T) {
	auth, repo, tokens, _ := setupAuthenticator(t)

	repo.findByIDFunc = func(context.Context, userdomain.ID) (userdomain.User, error) {
		t.Error("lookup must not happen for an invalid token")
		return userdomain.User{}, nil
	}

	for _, verifyErr := range []error{
		jwtverify.ErrTokenExpired,
		jwtverify.ErrInvalidSignature,
		jwtverify.ErrMalformedToken,
		jwtverify.ErrInvalidSubject,
	} {
		verifyErr := verifyErr
		tokens.verifyFunc = func(string, time.Time) (int64, error) { return 0, verifyErr }

		_, err := auth.Authenticate(context.Background(), "Bearer whatever")
		if !errors.Is(err, service.ErrInvalidToken) {
			t.Errorf("%v: expected ErrInvalidToken, got %v", verifyErr, err)
		}
	}
}

func TestAuthenticator_UnknownSubject(t *testing.T) {
	auth, _, tokens, _ := setupAuthenticator(t)

	tokens.verifyFunc = func(string, time.Time) (int64, error) { return 99, nil }

	_, err := auth.Authenticate(context.Background(), "Bearer good")
	if !errors.Is(err, service.ErrUnknownSubject) {
		t.Fatalf("expected ErrUnknownSubject, got %v", err)
	}
}

func TestAuthenticator_InactiveSubject(t *testing.T) {
	auth, repo, tokens, _ := setupAuthenticator(t)

	tokens.verifyFunc = func(string, time.Time) (int64, error) { return 1, nil }
	repo.findByIDFunc = func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
		return userdomain.User{ID: id, IsActive: false}, nil
	}

	_, err := auth.Authenticate(context.Background(), "Bearer good")
	if !errors.Is(err, service.ErrInactiveUser) {
		t.Fatalf("expected ErrInactiveUser, got %v", err)
	}
}

func TestAuthenticator_StatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{service.ErrNotAuthenticated, 401},
		{service.ErrInvalidToken, 401},
		{service.ErrUnknownSubject, 401},
		{service.ErrInactiveUser, 403},
		{service.ErrInactiveAccount, 403},
		{service.ErrInvalidCredentials, 401},
		{service.ErrEmailAlreadyRegistered, 400},
	}

	for _, tt := range tests {
		domainErr, ok := commonerrors.AsDomainError(tt.err)
		if !ok {
			t.Fatalf("expected domain error, got %T", tt.err)
		}
		if domainErr.HTTPStatus() != tt.status {
			t.Errorf("%s: expected status %d, got %d", domainErr.Code(), tt.status, domainErr.HTTPStatus())
		}
	}
}

func TestAuthenticator_StorageFailure(t *testing.T) {
	auth, repo, tokens, _ := setupAuthenticator(t)

	tokens.verifyFunc = func(string, time.Time) (int64, error) { return 1, nil }
	repo.findByIDFunc = func(context.Context, userdomain.ID) (userdomain.User, error) {
		return userdomain.User{}, errors.New("connection reset")
	}

	_, err := auth.Authenticate(context.Background(), "Bearer good")
	if !errors.Is(err, commonerrors.ErrDatabaseError) {
		t.Fatalf("expected ErrDatabaseError, got %v", err)
	}
}
