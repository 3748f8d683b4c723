package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()

	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestExpiryFromToken_ExpClaim(t *testing.T) {
	now := time.Now()
	exp := now.Add(30 * time.Minute).Truncate(time.Second)

	token := signedToken(t, jwtlib.MapClaims{"exp": exp.Unix()})

	got := ExpiryFromToken(token, now)
	assert.Equal(t, exp.Unix(), got.Unix())
}

func TestExpiryFromToken_NoExpClaim(t *testing.T) {
	now := time.Now()

	token := signedToken(t, jwtlib.MapClaims{"sub": "device-1"})

	got := ExpiryFromToken(token, now)
	assert.Equal(t, now.Add(DefaultTTL), got)
}

func TestExpiryFromToken_Malformed(t *testing.T) {
	now := time.Now()

	for _, token := range []string{"", "garbage", "a.b", "a.b.c"} {
		got := ExpiryFromToken(token, now)
		assert.Equal(t, now.Add(DefaultTTL), got, "token %q", token)
	}
}
