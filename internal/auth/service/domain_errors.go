package service

import (
	"net/http"

	commonerrors "github.com/techchallenge/vehicle-api/internal/common/errors"
)

var (
	ErrEmailAlreadyRegistered = commonerrors.NewDomainError(
		"EMAIL_ALREADY_REGISTERED",
		commonerrors.CategoryConflict,
		http.StatusBadRequest,
		"email already registered",
	)

	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"incorrect email or password",
	)

	ErrInactiveAccount = commonerrors.NewDomainError(
		"INACTIVE_ACCOUNT",
		commonerrors.CategoryForbidden,
		http.StatusForbidden,
		"account is inactive",
	)

	ErrPasswordTooLong = commonerrors.NewDomainError(
		"PASSWORD_TOO_LONG",
		commonerrors.CategoryValidation,
		http.StatusUnprocessableEntity,
		"password must be at most 72 bytes",
	)

	// The next three collapse to the same 401 on the wire; only the code
	// tells them apart.
	ErrNotAuthenticated = commonerrors.NewDomainError(
		"NOT_AUTHENTICATED",
		commonerrors.CategoryAuth,
		http.StatusUnauthorized,
		"not authenticated",
	)

	ErrInvalidToken = commonerrors.NewDomainError(
		"INVALID_TOKEN",
		commonerrors.CategoryAuth,
		http.StatusUnauthorized,
		"could not validate credentials",
	)

	ErrUnknownSubject = commonerrors.NewDomainError(
		"UNKNOWN_SUBJECT",
		commonerrors.CategoryAuth,
		http.StatusUnauthorized,
		"could not validate credentials",
	)

	ErrInactiveUser = commonerrors.NewDomainError(
		"INACTIVE_USER",
		commonerrors.CategoryForbidden,
		http.StatusForbidden,
		"inactive user",
	)
)
