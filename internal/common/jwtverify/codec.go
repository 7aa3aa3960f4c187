package jwtverify

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken   = errors.New("token is malformed")
	ErrTokenExpired     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrInvalidSubject   = errors.New("token subject is missing or not numeric")
	ErrInvalidToken     = errors.New("token is not valid")
)

// Codec issues and verifies HS256 access tokens whose subject is a numeric
// user id. The secret is copied at construction and never changes.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for subjectID valid until exactly now+TTL.
func (c *Codec) Issue(subjectID int64, now time.Time) (string, error) {
	claims := accessClaims{
		Subject:   strconv.FormatInt(subjectID, 10),
		IssuedAt:  &preciseDate{Time: now},
		ExpiresAt: &preciseDate{Time: now.Add(c.ttl)},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the subject of a token signed with this codec's secret that
// has not expired at now. Failures wrap one of the Err* values above.
func (c *Codec) Verify(tokenString string, now time.Time) (int64, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return 0, classify(err)
	}

	if claims.Subject == "" {
		return 0, ErrInvalidSubject
	}
	subjectID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSubject, claims.Subject)
	}
	return subjectID, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}

// Reason names the failure class of a Verify error for logs and metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrInvalidSignature):
		return "signature"
	case errors.Is(err, ErrMalformedToken):
		return "malformed"
	case errors.Is(err, ErrInvalidSubject):
		return "subject"
	default:
		return "invalid"
	}
}
