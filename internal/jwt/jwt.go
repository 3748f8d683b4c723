package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is assumed for tokens that carry no usable exp claim.
const DefaultTTL = time.Hour

// ExpiryFromToken extracts the exp claim from a bearer token for local session
// bookkeeping. The signature is not verified; the server remains the authority
// and rejects stale tokens with 401. A missing or malformed claim falls back
// to now + DefaultTTL.
func ExpiryFromToken(tokenString string, now time.Time) time.Time {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return now.Add(DefaultTTL)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return now.Add(DefaultTTL)
	}

	return exp.Time
}
