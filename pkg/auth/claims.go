package auth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the token fields the client cares about. The remote service
// issues the token; this client only needs the author identity out of it.
type Claims struct {
	Alias    string `json:"alias"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// AliasFromToken extracts the author alias from a bearer token without
// verifying the signature. Verification is the remote service's job; the
// client only needs a stable identity for draft keying and conflict checks.
// Claim priority: alias, username, then the subject.
func AliasFromToken(token string) (string, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return "", fmt.Errorf("empty auth token")
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("malformed auth token: %w", err)
	}

	for _, candidate := range []string{claims.Alias, claims.Username, claims.Subject} {
		if alias := strings.TrimSpace(candidate); alias != "" {
			return alias, nil
		}
	}
	return "", fmt.Errorf("auth token carries no author identity")
}
