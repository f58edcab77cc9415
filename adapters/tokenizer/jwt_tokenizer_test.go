package tokenizer

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adcpm/sc2/core"
)

func TestCredentialRoundTrip(t *testing.T) {
	tok := NewJWTTokenizer([]byte("secret"))

	cred := core.Credential{
		User:  "alice",
		Proxy: "busy.app",
		Role:  core.RoleApp,
		Scope: []string{"vote", "comment"},
	}
	signed, err := tok.IssueCredential(cred, time.Hour)
	require.NoError(t, err)

	parsed, err := tok.ParseCredential(signed)
	require.NoError(t, err)
	assert.Equal(t, cred, parsed)
}

func TestParseCredential_EmptyScopeStaysEmpty(t *testing.T) {
	tok := NewJWTTokenizer([]byte("secret"))

	signed, err := tok.IssueCredential(core.Credential{User: "alice", Role: core.RoleUser}, time.Hour)
	require.NoError(t, err)

	parsed, err := tok.ParseCredential(signed)
	require.NoError(t, err)
	assert.Empty(t, parsed.Scope)
}

func TestParseCredential_WrongSecret(t *testing.T) {
	signed, err := NewJWTTokenizer([]byte("secret")).IssueCredential(core.Credential{User: "alice"}, time.Hour)
	require.NoError(t, err)

	_, err = NewJWTTokenizer([]byte("other")).ParseCredential(signed)
	assert.ErrorIs(t, err, core.ErrInvalidCredential)
}

func TestParseCredential_Expired(t *testing.T) {
	tok := NewJWTTokenizer([]byte("secret"))

	signed, err := tok.IssueCredential(core.Credential{User: "alice"}, -time.Minute)
	require.NoError(t, err)

	_, err = tok.ParseCredential(signed)
	assert.ErrorIs(t, err, core.ErrInvalidCredential)
}

func TestParseCredential_RejectsLoginToken(t *testing.T) {
	tok := NewJWTTokenizer([]byte("secret"))

	loginToken, err := tok.IssueLoginToken("alice")
	require.NoError(t, err)

	_, err = tok.ParseCredential(loginToken)
	assert.ErrorIs(t, err, core.ErrInvalidCredential)
}

func TestIssueLoginToken(t *testing.T) {
	secret := []byte("secret")
	tok := NewJWTTokenizer(secret)

	first, err := tok.IssueLoginToken("alice")
	require.NoError(t, err)
	second, err := tok.IssueLoginToken("alice")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	var claims LoginClaims
	_, err = jwt.ParseWithClaims(first, &claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithAudience(AudienceLogin))
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(DefaultLoginTokenTTL), claims.ExpiresAt.Time, time.Minute)
}
