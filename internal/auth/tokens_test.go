package auth

import (
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/storefront-core/internal/common"
)

func newTestTokens(t *testing.T, now time.Time) *Tokens {
	t.Helper()
	tokens, err := NewTokens(Config{Secret: "super-secret-key", Issuer: "storefront", Audience: "merchant-dashboard"})
	require.NoError(t, err)
	tokens.WithNow(func() time.Time { return now })
	return tokens
}

func TestTokensRoundTrip(t *testing.T) {
	now := time.Now()
	tokens := newTestTokens(t, now)

	signed, expires, err := tokens.Issue(Claims{UserID: "user-1", StoreID: "store-1", Role: "owner"})
	require.NoError(t, err)
	require.Equal(t, now.Add(defaultTokenTTL), expires)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, Claims{UserID: "user-1", StoreID: "store-1", Role: "owner"}, claims)
}

func TestTokensRejectsAlgorithmMismatch(t *testing.T) {
	now := time.Now()
	tokens := newTestTokens(t, now)

	built, err := jwt.NewBuilder().
		Subject("user-1").
		Issuer("storefront").
		Audience([]string{"merchant-dashboard"}).
		IssuedAt(now).
		Expiration(now.Add(time.Minute)).
		Build()
	require.NoError(t, err)
	signed, err := jwt.Sign(built, jwt.WithKey(jwa.HS384, []byte("super-secret-key")))
	require.NoError(t, err)

	_, err = tokens.Verify(string(signed))
	require.Equal(t, "UNAUTHORIZED", common.CodeOf(err))
}

func TestTokensRejectsExpiredAndForeignTokens(t *testing.T) {
	issuedAt := time.Now().Add(-time.Hour)
	old := newTestTokens(t, issuedAt)
	signed, _, err := old.Issue(Claims{UserID: "user-1", StoreID: "store-1"})
	require.NoError(t, err)

	_, err = newTestTokens(t, time.Now()).Verify(signed)
	require.Error(t, err)

	other, err := NewTokens(Config{Secret: "another-secret", Issuer: "storefront", Audience: "merchant-dashboard"})
	require.NoError(t, err)
	foreign, _, err := other.Issue(Claims{UserID: "user-1", StoreID: "store-1"})
	require.NoError(t, err)
	_, err = newTestTokens(t, time.Now()).Verify(foreign)
	require.Error(t, err)

	_, err = newTestTokens(t, time.Now()).Verify("not-a-jwt")
	require.Error(t, err)
}

func TestNewTokensRequiresSecret(t *testing.T) {
	_, err := NewTokens(Config{Secret: "  "})
	require.Error(t, err)
}

func TestTokensValidateIssuerAndNotBefore(t *testing.T) {
	now := time.Now()
	tokens := newTestTokens(t, now)

	wrongIssuer, err := jwt.NewBuilder().
		Subject("user-1").
		Issuer("someone-else").
		Audience([]string{"merchant-dashboard"}).
		IssuedAt(now).
		Expiration(now.Add(time.Minute)).
		Build()
	require.NoError(t, err)
	require.Error(t, tokens.validate(wrongIssuer))

	future, err := jwt.NewBuilder().
		Subject("user-1").
		Issuer("storefront").
		Audience([]string{"merchant-dashboard"}).
		IssuedAt(now).
		NotBefore(now.Add(5 * time.Minute)).
		Expiration(now.Add(10 * time.Minute)).
		Build()
	require.NoError(t, err)
	require.Error(t, tokens.validate(future))
}
