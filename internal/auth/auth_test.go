package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func TestJwtSignAndVerify(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err, "failed to generate key pair")

	method := jwt.GetSigningMethod("EdDSA")
	issuer := NewSigner("crm-test", method, 5*time.Minute, priv)
	validator := NewVerifier("crm-test", method, pub)
	now := time.Now().UTC()

	t.Log("signed token is verified and keeps subject with roles")
	{
		token, err := issuer.Sign("john@somemail.com", []string{"user", "admin"}, now)
		require.NoError(t, err, "failed to sign token")
		require.Equal(t, now.Add(5*time.Minute).Unix(), token.ExpiresAt)

		claims, err := validator.Verify(token.Signed)
		require.NoError(t, err, "token was signed by paired key but verification failed")
		require.Equal(t, "john@somemail.com", claims.Subject)
		require.Equal(t, []string{"user", "admin"}, claims.Roles)
	}

	t.Log("expired token is rejected")
	{
		token, err := issuer.Sign("john@somemail.com", nil, now.Add(-time.Hour))
		require.NoError(t, err, "failed to sign token")

		_, err = validator.Verify(token.Signed)
		require.Error(t, err, "token expired but passed verification")
	}

	t.Log("token of another issuer is rejected")
	{
		token, err := NewSigner("someone-else", method, time.Minute, priv).Sign("john@somemail.com", nil, now)
		require.NoError(t, err)

		_, err = validator.Verify(token.Signed)
		require.Error(t, err, "issuer must match")
	}

	t.Log("token signed by foreign key is rejected")
	{
		_, foreignPriv, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		token, err := NewSigner("crm-test", method, time.Minute, foreignPriv).Sign("john@somemail.com", nil, now)
		require.NoError(t, err)

		_, err = validator.Verify(token.Signed)
		require.Error(t, err, "signature must not match")
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("secret_password")
	require.NoError(t, err, "failed to hash password")

	t.Log("same password matches hash")
	{
		ok, err := ComparePassword(hash, "secret_password")
		require.NoError(t, err)
		require.True(t, ok)
	}

	t.Log("different password doesn't match and it is not an error")
	{
		ok, err := ComparePassword(hash, "another_password")
		require.NoError(t, err)
		require.False(t, ok)
	}

	t.Log("malformed hash is an error")
	{
		_, err := ComparePassword("not-a-hash", "secret_password")
		require.Error(t, err)
	}

	t.Log("password longer than bcrypt limit is rejected")
	{
		_, err := HashPassword(strings.Repeat("p", 73))
		require.ErrorIs(t, err, ErrPasswordTooLong)
	}
}

func TestClaimsHasAnyRole(t *testing.T) {
	claims := Claims{Roles: []string{"user"}}
	require.True(t, claims.HasAnyRole("admin", "user"))
	require.False(t, claims.HasAnyRole("admin"))
	require.False(t, claims.HasAnyRole())
}
