package tokenizer

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/adcpm/sc2/core"
	"github.com/adcpm/sc2/ports"
)

const (
	AudienceAccess = "sc2:access"
	AudienceLogin  = "sc2:login"

	// DefaultLoginTokenTTL bounds how long a minted challenge stays redeemable.
	DefaultLoginTokenTTL = 10 * time.Minute
)

// JWTTokenizer implements the Tokenizer port with HS256 JWTs signed by the
// service-wide secret.
type JWTTokenizer struct {
	secret   []byte
	loginTTL time.Duration
}

var _ ports.Tokenizer = (*JWTTokenizer)(nil)

// NewJWTTokenizer creates a tokenizer signing with secret.
func NewJWTTokenizer(secret []byte) *JWTTokenizer {
	return &JWTTokenizer{
		secret:   secret,
		loginTTL: DefaultLoginTokenTTL,
	}
}

// IssueCredential mints an access credential valid for ttl.
func (t *JWTTokenizer) IssueCredential(cred core.Credential, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := CredentialClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cred.User,
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{AudienceAccess},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:  cred.Role,
		Proxy: cred.Proxy,
		Scope: cred.Scope,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign credential: %w", err)
	}
	return signed, nil
}

// ParseCredential validates a bearer token and returns the credential it carries.
func (t *JWTTokenizer) ParseCredential(tokenStr string) (core.Credential, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CredentialClaims{}, t.keyFunc, jwt.WithAudience(AudienceAccess))
	if err != nil {
		return core.Credential{}, fmt.Errorf("%w: %w", core.ErrInvalidCredential, err)
	}
	if !token.Valid {
		return core.Credential{}, core.ErrInvalidCredential
	}

	claims, ok := token.Claims.(*CredentialClaims)
	if !ok {
		return core.Credential{}, core.ErrInvalidCredential
	}

	return core.Credential{
		User:  claims.Subject,
		Proxy: claims.Proxy,
		Role:  claims.Role,
		Scope: claims.Scope,
	}, nil
}

// IssueLoginToken mints a fresh unique login token bound to username. The jti
// lets the external verifier enforce single use.
func (t *JWTTokenizer) IssueLoginToken(username string) (string, error) {
	now := time.Now()
	claims := LoginClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{AudienceLogin},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.loginTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign login token: %w", err)
	}
	return signed, nil
}

func (t *JWTTokenizer) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return t.secret, nil
}
