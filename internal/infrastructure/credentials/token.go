package credentials

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether a bearer token carries an exp claim in the past.
// The signature is NOT verified here, only the backend can do that; this is
// a cheap local pre-check so startup hydration skips a profile fetch that is
// guaranteed to be rejected. Tokens without a readable exp claim are left to
// the backend to judge.
func Expired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return now.After(claims.ExpiresAt.Time)
}
