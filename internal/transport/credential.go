package transport

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CredentialExpired reports whether the join credential is a JWT whose
// expiry has passed. The token is never verified here: the server does that
// at handshake. This only exists to stop retrying a join that is doomed.
// Credentials that are not JWTs, or carry no expiry, are treated as live.
func CredentialExpired(credential string, now time.Time) bool {
	if credential == "" {
		return false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(credential, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
