package service

import (
	"context"
	"errors"
	"time"

	"github.com/techchallenge/vehicle-api/internal/common/clock"
	"github.com/techchallenge/vehicle-api/internal/common/jwtverify"
	"github.com/techchallenge/vehicle-api/internal/common/logger"
	"github.com/techchallenge/vehicle-api/internal/observability/metrics"
	userdomain "github.com/techchallenge/vehicle-api/internal/user/domain"
	userrepo "github.com/techchallenge/vehicle-api/internal/user/repository"
)

// TokenVerifier is satisfied by *jwtverify.Codec.
type TokenVerifier interface {
	Verify(token string, now time.Time) (int64, error)
}

// Authenticator resolves the user behind an Authorization header. Every
// failure is one of ErrNotAuthenticated, ErrInvalidToken, ErrUnknownSubject,
// ErrInactiveUser, or a storage error.
type Authenticator struct {
	repo   userrepo.Repository
	tokens TokenVerifier
	clock  clock.Clock
	log    *logger.Logger
}

func NewAuthenticator(repo userrepo.Repository, tokens TokenVerifier, clk clock.Clock, log *logger.Logger) *Authenticator {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Authenticator{
		repo:   repo,
		tokens: tokens,
		clock:  clk,
		log:    log,
	}
}

func (a *Authenticator) Authenticate(ctx context.Context, authorizationHeader string) (userdomain.User, error) {
	token, ok := jwtverify.BearerToken(authorizationHeader)
	if !ok {
		a.log.WithFields(ctx, logger.Fields{
			"action": "authenticate_no_credentials",
		}).Debug("authenticate failed: no bearer token")
		metrics.JWTValidationsFailed.WithLabelValues("missing").Inc()
		return userdomain.User{}, ErrNotAuthenticated
	}

	metrics.JWTValidationsTotal.Inc()
	subjectID, err := a.tokens.Verify(token, a.clock.Now())
	if err != nil {
		reason := jwtverify.Reason(err)
		a.log.WithFields(ctx, logger.Fields{
			"reason": reason,
			"action": "authenticate_invalid_token",
		}).Warnf("authenticate failed: %v", err)
		metrics.JWTValidationsFailed.WithLabelValues(reason).Inc()
		return userdomain.User{}, ErrInvalidToken
	}

	user, err := a.repo.FindByID(ctx, userdomain.ID(subjectID))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			a.log.WithFields(ctx, logger.Fields{
				"user_id": subjectID,
				"action":  "authenticate_unknown_subject",
			}).Warn("authenticate failed: user not found")
			metrics.JWTValidationsFailed.WithLabelValues("unknown_subject").Inc()
			return userdomain.User{}, ErrUnknownSubject
		}
		a.log.WithFields(ctx, logger.Fields{
			"user_id": subjectID,
			"action":  "authenticate_lookup_failed",
		}).Errorf("authenticate failed: %v", err)
		return userdomain.User{}, storageError(err)
	}

	if !user.IsActive {
		a.log.WithFields(ctx, logger.Fields{
			"user_id": subjectID,
			"action":  "authenticate_inactive_user",
		}).Warn("authenticate failed: user inactive")
		metrics.JWTValidationsFailed.WithLabelValues("inactive").Inc()
		return userdomain.User{}, ErrInactiveUser
	}

	return user, nil
}
