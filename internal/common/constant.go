// Package common contains shared constants and sentinel errors used across
// OpenMat client components.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in the Authorization header value.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName correlates a request with client-side log records.
	RequestIDHeaderName = "X-Request-ID"

	// TokenMetadataKey is the key under which the session token is persisted.
	TokenMetadataKey = "token"
)

// BearerValue formats a token as an Authorization header value.
func BearerValue(token string) string {
	return BearerPrefix + token
}
