package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)

	token, err := tokens.Issue(42, "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenExpired(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Nanosecond)

	token, err := tokens.Issue(1, "a@x.com")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, err := issuer.Issue(1, "a@x.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestTokenMalformed(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)

	for _, garbage := range []string{"", "junk", "a.b", "a.b.c"} {
		_, err := tokens.Verify(garbage)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", garbage)
	}
}

func TestTokenRejectsForeignSigningMethod(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)

	// A token signed with the right secret but the wrong algorithm must
	// not verify.
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID: 1,
		Email:  "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := foreign.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.Error(t, err)
}

func TestTokenManagerDefaults(t *testing.T) {
	tokens := NewTokenManager("", 0)
	assert.Equal(t, DefaultTokenTTL, tokens.TTL())

	// Falls back to the development secret when none is configured.
	token, err := tokens.Issue(7, "dev@x.com")
	require.NoError(t, err)
	claims, err := NewTokenManager(DevSecret, time.Hour).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
}
