package auth

import (
	"copydesk/internal/domain/models"
)

// JWTVerifier validates identity-provider access tokens.
type JWTVerifier interface {
	// VerifyToken validates a JWT and returns its claims.
	VerifyToken(tokenString string) (*models.IdentityClaims, error)

	// Close releases resources held by the verifier.
	Close() error
}
