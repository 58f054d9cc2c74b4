package jwtverify

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	commonerrors "github.com/AlibekovAA/account-service/internal/common/errors"
	"github.com/AlibekovAA/account-service/internal/observability/metrics"
)

// Claims is the identity carried by a session token.
type Claims struct {
	SubjectID string
	Email     string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionClaims is the signed wire form of Claims.
type SessionClaims struct {
	Email    string `json:"email"`
	Username string `json:"usr"`
	jwt.RegisteredClaims
}

func NewSessionClaims(c Claims) SessionClaims {
	return SessionClaims{
		Email:    c.Email,
		Username: c.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.SubjectID,
			IssuedAt:  jwt.NewNumericDate(c.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
	}
}

func (sc SessionClaims) Claims() Claims {
	c := Claims{
		SubjectID: sc.Subject,
		Email:     sc.Email,
		Username:  sc.Username,
	}
	if sc.IssuedAt != nil {
		c.IssuedAt = sc.IssuedAt.Time.UTC()
	}
	if sc.ExpiresAt != nil {
		c.ExpiresAt = sc.ExpiresAt.Time.UTC()
	}
	return c
}

var signingMethod = jwt.SigningMethodHS256

func SignToken(c Claims, secret []byte) (string, error) {
	t := jwt.NewWithClaims(signingMethod, NewSessionClaims(c))
	return t.SignedString(secret)
}

// ParseToken checks the signature first and expiry second, so a forged token
// is always reported as invalid even when its claimed expiry has passed.
func ParseToken(tokenString string, secret []byte, now func() time.Time) (Claims, error) {
	metrics.TokenValidationsTotal.Inc()

	sc := &SessionClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		sc,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			metrics.TokenValidationsFailed.WithLabelValues("expired").Inc()
			return Claims{}, commonerrors.ErrTokenExpired.WithCause(err)
		}
		metrics.TokenValidationsFailed.WithLabelValues("invalid").Inc()
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(err)
	}

	if sc.Subject == "" || sc.Username == "" || sc.Email == "" {
		metrics.TokenValidationsFailed.WithLabelValues("missing_claims").Inc()
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(errors.New("missing sub, email or usr claims"))
	}

	return sc.Claims(), nil
}
