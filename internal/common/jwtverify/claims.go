package jwtverify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// accessClaims is the payload of an access token. Unlike
// jwt.RegisteredClaims its dates keep sub-second precision, so a token
// issued at t expires at exactly t+TTL.
type accessClaims struct {
	Subject   string       `json:"sub"`
	IssuedAt  *preciseDate `json:"iat,omitempty"`
	ExpiresAt *preciseDate `json:"exp,omitempty"`
}

var _ jwt.Claims = (*accessClaims)(nil)

func (c *accessClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return c.ExpiresAt.numericDate(), nil
}

func (c *accessClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	return c.IssuedAt.numericDate(), nil
}

func (c *accessClaims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (c *accessClaims) GetIssuer() (string, error)               { return "", nil }
func (c *accessClaims) GetSubject() (string, error)              { return c.Subject, nil }
func (c *accessClaims) GetAudience() (jwt.ClaimStrings, error)   { return nil, nil }

// preciseDate is a NumericDate that marshals with up to nanosecond
// precision: whole seconds as an integer, anything finer as a decimal.
type preciseDate struct {
	time.Time
}

func (d *preciseDate) numericDate() *jwt.NumericDate {
	if d == nil {
		return nil
	}
	// Built directly: jwt.NewNumericDate truncates to jwt.TimePrecision.
	return &jwt.NumericDate{Time: d.Time}
}

func (d preciseDate) MarshalJSON() ([]byte, error) {
	secs := d.Unix()
	nanos := d.Nanosecond()
	if nanos == 0 {
		return []byte(strconv.FormatInt(secs, 10)), nil
	}
	frac := strings.TrimRight(fmt.Sprintf("%09d", nanos), "0")
	return []byte(strconv.FormatInt(secs, 10) + "." + frac), nil
}

func (d *preciseDate) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %v", jwt.ErrInvalidType, err)
	}
	n, ok := v.(json.Number)
	if !ok {
		return jwt.ErrInvalidType
	}

	t, err := parseNumericDate(n.String())
	if err != nil {
		return fmt.Errorf("%w: %v", jwt.ErrInvalidType, err)
	}
	d.Time = t
	return nil
}

// parseNumericDate reads plain decimals exactly and falls back to float
// parsing for exponent forms.
func parseNumericDate(s string) (time.Time, error) {
	whole, frac, _ := strings.Cut(s, ".")
	secs, err := strconv.ParseInt(whole, 10, 64)
	if err == nil && secs >= 0 && isDigits(frac) {
		if len(frac) > 9 {
			frac = frac[:9]
		}
		nanos := int64(0)
		if frac != "" {
			nanos, _ = strconv.ParseInt(frac+strings.Repeat("0", 9-len(frac)), 10, 64)
		}
		return time.Unix(secs, nanos), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, err
	}
	round, rem := math.Modf(f)
	return time.Unix(int64(round), int64(rem*1e9)), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
