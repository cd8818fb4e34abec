package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/parecer-api/internal/models"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
)

// TokenService validates access tokens issued by the hosted auth provider. Tokens are never
// minted here.
type TokenService struct {
	secret   []byte
	audience string
}

// NewTokenService constructs a TokenService. An empty audience skips the aud check.
func NewTokenService(secret, audience string) *TokenService {
	return &TokenService{secret: []byte(secret), audience: audience}
}

// ValidateToken parses an HS256 token and returns its claims. The subject must be present.
func (s *TokenService) ValidateToken(raw string) (*models.JWTClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}
	claims := &models.JWTClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token expirado")
		}
		return nil, appErrors.As(appErrors.ErrUnauthorized, fmt.Errorf("parse token: %w", err), "token inválido")
	}
	if claims.Subject == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token sem subject")
	}
	return claims, nil
}
