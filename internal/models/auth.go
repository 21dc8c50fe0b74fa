package models

import "github.com/golang-jwt/jwt/v5"

// Role grants catalog administration rights.
type Role string

const (
	RoleAdmin Role = "ADMIN"
)

// JWTClaims carries the authenticated subject for catalog mutation routes.
type JWTClaims struct {
	UserID string `json:"sub,omitempty"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}
