package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims are the JWT claims issued by the external identity
// provider. Only the fields the API cares about are mapped.
type IdentityClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
