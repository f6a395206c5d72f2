package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uint
	Email  string
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to clients. The user id
// travels as the registered subject.
type AccessTokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the caller resolved from a verified bearer token.
type Identity struct {
	UserID  uint
	Email   string
	TokenID string
}
