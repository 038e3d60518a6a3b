package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type tokenClaims struct {
	expiresAt time.Time
	subject   string
}

// inspectToken reads the exp and sub claims without verifying the signature.
// The server is the only authority on validity; these values are used for
// display and logging only.
func inspectToken(token string) tokenClaims {
	if token == "" {
		return tokenClaims{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return tokenClaims{}
	}

	var out tokenClaims
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.expiresAt = exp.Time
	}
	if sub, err := claims.GetSubject(); err == nil {
		out.subject = sub
	}
	return out
}
