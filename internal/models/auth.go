package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims are the claims of an access token issued by the hosted auth provider. The subject
// is the teacher's user id.
type JWTClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the authenticated teacher id.
func (c *JWTClaims) UserID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}
