package auth

import (
	"testing"
	"time"

	"tasklist/config"
	"tasklist/internal/domain/entity"
	"tasklist/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(secret, algorithm string) *config.Config {
	cfg := &config.Config{}
	cfg.JWT = &config.JWTConfig{
		Secret:    secret,
		Algorithm: algorithm,
	}

	return cfg
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	tokenSvc, err := NewJWTService(testConfig("test_secret_key_very_long_for_testing", "HS256"))
	require.NoError(t, err)
	require.NotNil(t, tokenSvc)

	scopes := entity.Scopes{entity.ScopeBasic, entity.ScopeAdmin}

	token, err := tokenSvc.Issue("alice", scopes, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tokenSvc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, []string{"basic", "admin"}, claims.Scopes)
	assert.Equal(t, scopes, claims.TokenScopes())
}

func TestJWTService_ExpiredToken(t *testing.T) {
	tokenSvc, err := NewJWTService(testConfig("test_secret_key_very_long_for_testing", "HS256"))
	require.NoError(t, err)

	// A negative ttl produces a token that is already expired at issuance.
	token, err := tokenSvc.Issue("alice", entity.Scopes{entity.ScopeBasic}, -time.Second)
	require.NoError(t, err)

	claims, err := tokenSvc.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(testConfig("issuer_secret_key_very_long_for_testing", "HS256"))
	require.NoError(t, err)
	verifier, err := NewJWTService(testConfig("another_secret_key_very_long_for_testing", "HS256"))
	require.NoError(t, err)

	token, err := issuer.Issue("alice", entity.Scopes{entity.ScopeBasic}, 0)
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestJWTService_MalformedToken(t *testing.T) {
	tokenSvc, err := NewJWTService(testConfig("test_secret_key_very_long_for_testing", "HS256"))
	require.NoError(t, err)

	claims, err := tokenSvc.Verify("clearly-not-a-jwt-token-format")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestJWTService_UnknownScopesDropped(t *testing.T) {
	tokenSvc, err := NewJWTService(testConfig("test_secret_key_very_long_for_testing", "HS256"))
	require.NoError(t, err)

	token, err := tokenSvc.Issue("alice", entity.Scopes{entity.ScopeBasic, entity.Scope("bogus")}, 0)
	require.NoError(t, err)

	claims, err := tokenSvc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, entity.Scopes{entity.ScopeBasic}, claims.TokenScopes())
}

func TestJWTService_EmptySecret(t *testing.T) {
	tokenSvc, err := NewJWTService(testConfig("", "HS256"))
	assert.Error(t, err)
	assert.Nil(t, tokenSvc)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_NonHMACAlgorithm(t *testing.T) {
	tokenSvc, err := NewJWTService(testConfig("test_secret_key_very_long_for_testing", "RS256"))
	assert.Error(t, err)
	assert.Nil(t, tokenSvc)
}

func TestJWTService_DefaultAccessTokenTTL(t *testing.T) {
	tokenSvc, err := NewJWTService(testConfig("test_secret_key_very_long_for_testing", "HS256"))
	require.NoError(t, err)

	assert.Equal(t, 20*time.Minute, tokenSvc.AccessTokenTTL())
}
