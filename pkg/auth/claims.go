package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uint
	Email    string
	Username string
	JTI      string
}

// AccessTokenClaims represents the typed JWT presented by storefront clients.
type AccessTokenClaims struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}
