package service

import (
	"context"
	"errors"
	"time"

	"github.com/techchallenge/vehicle-api/internal/common/clock"
	"github.com/techchallenge/vehicle-api/internal/common/constants"
	commoncrypto "github.com/techchallenge/vehicle-api/internal/common/crypto"
	commonerrors "github.com/techchallenge/vehicle-api/internal/common/errors"
	"github.com/techchallenge/vehicle-api/internal/common/logger"
	"github.com/techchallenge/vehicle-api/internal/observability/metrics"
	userdomain "github.com/techchallenge/vehicle-api/internal/user/domain"
	userrepo "github.com/techchallenge/vehicle-api/internal/user/repository"
)

// TokenIssuer is satisfied by *jwtverify.Codec.
type TokenIssuer interface {
	Issue(subjectID int64, now time.Time) (string, error)
}

// dummyPassword is hashed at construction and verified against on logins for
// unknown emails so both paths pay for exactly one hash comparison.
const dummyPassword = "timing-equalizer-not-a-real-password"

type AuthService struct {
	repo   userrepo.Repository
	hasher commoncrypto.PasswordHasher
	tokens TokenIssuer
	clock  clock.Clock
	log    *logger.Logger

	dummyHash string
}

func NewAuthService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	tokens TokenIssuer,
	clk clock.Clock,
	log *logger.Logger,
) *AuthService {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	s := &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		clock:  clk,
		log:    log,
	}
	s.dummyHash = s.prepareDummyHash()
	return s
}

type RegisterInput struct {
	Email    string
	Password string
	FullName *string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string
	TokenType   string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (userdomain.User, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "register_attempt",
	}).Info("register attempt")

	if len(input.Password) > constants.PasswordMaxLength {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return userdomain.User{}, ErrPasswordTooLong
	}

	_, err := s.repo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_email_exists",
		}).Warn("register failed: email already registered")
		metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		return userdomain.User{}, ErrEmailAlreadyRegistered
	case !errors.Is(err, userrepo.ErrUserNotFound):
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_lookup_failed",
		}).Errorf("register failed: %v", err)
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return userdomain.User{}, storageError(err)
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		if errors.Is(err, commoncrypto.ErrPasswordTooLong) {
			return userdomain.User{}, ErrPasswordTooLong
		}
		return userdomain.User{}, commonerrors.ErrInternalError.WithCause(err)
	}

	user, err := s.repo.Create(ctx, userdomain.NewUser{
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
	})
	if err != nil {
		// The unique index is the authority when two registrations race
		// past the lookup above.
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "register_email_exists",
			}).Warn("register failed: email already registered on insert")
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return userdomain.User{}, ErrEmailAlreadyRegistered
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return userdomain.User{}, storageError(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": int64(user.ID),
		"action":  "register_success",
	}).Info("register success")
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "login_attempt",
	}).Info("login attempt")

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.verifyPassword(input.Password, s.dummyHash)
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return LoginResult{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return LoginResult{}, storageError(err)
	}

	if !s.verifyPassword(input.Password, user.PasswordHash) {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": int64(user.ID),
			"action":  "login_invalid_password",
		}).Warn("login failed: invalid password")
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return LoginResult{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": int64(user.ID),
			"action":  "login_inactive_account",
		}).Warn("login failed: account inactive")
		metrics.LoginsTotal.WithLabelValues("inactive").Inc()
		return LoginResult{}, ErrInactiveAccount
	}

	token, err := s.tokens.Issue(int64(user.ID), s.clock.Now())
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": int64(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return LoginResult{}, commonerrors.ErrInternalError.WithCause(err)
	}
	metrics.AccessTokensIssued.Inc()

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": int64(user.ID),
		"action":  "login_success",
	}).Info("login success")
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return LoginResult{
		AccessToken: token,
		TokenType:   constants.TokenTypeBearer,
	}, nil
}

func (s *AuthService) hashPassword(plaintext string) (string, error) {
	start := time.Now()
	defer func() {
		metrics.PasswordHashDurationSeconds.Observe(time.Since(start).Seconds())
	}()
	return s.hasher.Hash(plaintext)
}

func (s *AuthService) verifyPassword(plaintext, hashed string) bool {
	start := time.Now()
	defer func() {
		metrics.PasswordHashDurationSeconds.Observe(time.Since(start).Seconds())
	}()
	return s.hasher.Verify(plaintext, hashed)
}

func (s *AuthService) prepareDummyHash() string {
	hash, err := s.hasher.Hash(dummyPassword)
	if err != nil {
		s.log.Warnf("failed to prepare dummy password hash: %v", err)
		return ""
	}
	return hash
}

// storageError hides the store's error behind DATABASE_ERROR unless it is
// already a domain error such as an open circuit.
func storageError(err error) error {
	if commonerrors.IsDomainError(err) {
		return err
	}
	return commonerrors.ErrDatabaseError.WithCause(err)
}
