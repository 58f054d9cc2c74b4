package service

import (
	"time"

	"github.com/AlibekovAA/account-service/internal/account/domain"
	"github.com/AlibekovAA/account-service/internal/common/clock"
	"github.com/AlibekovAA/account-service/internal/common/jwtverify"
)

// TokenIssuer mints and verifies HS256 session tokens. Identical claims and
// timestamps yield identical tokens; there is no per-token nonce.
type TokenIssuer struct {
	jwtSecret []byte
	clock     clock.Clock
	ttl       time.Duration
}

func NewTokenIssuer(jwtSecret string, ttl time.Duration, clock clock.Clock) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret: []byte(jwtSecret),
		clock:     clock,
		ttl:       ttl,
	}
}

// Issue signs a token for account valid for the configured TTL.
func (ti *TokenIssuer) Issue(account domain.Account) (string, jwtverify.Claims, error) {
	// JWT timestamps have second precision.
	now := ti.clock.Now().UTC().Truncate(time.Second)

	claims := jwtverify.Claims{
		SubjectID: string(account.ID),
		Email:     account.Email,
		Username:  account.Username,
		IssuedAt:  now,
		ExpiresAt: now.Add(ti.ttl),
	}

	token, err := jwtverify.SignToken(claims, ti.jwtSecret)
	if err != nil {
		return "", jwtverify.Claims{}, err
	}

	incrementSessionTokensIssued()
	return token, claims, nil
}

// Verify checks the signature and then expiry against the issuer's clock.
func (ti *TokenIssuer) Verify(tokenString string) (jwtverify.Claims, error) {
	return jwtverify.ParseToken(tokenString, ti.jwtSecret, ti.clock.Now)
}
