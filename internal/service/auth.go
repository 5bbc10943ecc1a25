package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/dataproc/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const serviceTokenTTL = 5 * time.Minute

// AuthService verifies inbound service credentials and signs outbound
// service tokens for cross-service calls. Two schemes are supported:
// HMAC-SHA256 JWT bearer tokens and a bcrypt-hashed static API key.
// With neither configured the service runs open.
type AuthService struct {
	secret     []byte
	apiKeyHash []byte
	subject    string
}

// NewAuthService creates a new AuthService. Either argument may be empty.
func NewAuthService(jwtSecret, apiKeyHash, subject string) *AuthService {
	return &AuthService{
		secret:     []byte(jwtSecret),
		apiKeyHash: []byte(apiKeyHash),
		subject:    subject,
	}
}

// Enabled reports whether any credential scheme is configured.
func (s *AuthService) Enabled() bool {
	return len(s.secret) > 0 || len(s.apiKeyHash) > 0
}

// VerifyToken parses and validates an HMAC-signed JWT token string.
func (s *AuthService) VerifyToken(tokenString string) error {
	if len(s.secret) == 0 {
		return domain.ErrUnauthorized
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.ErrUnauthorized
	}
	return nil
}

// VerifyAPIKey compares a presented API key against the configured bcrypt hash.
func (s *AuthService) VerifyAPIKey(key string) error {
	if len(s.apiKeyHash) == 0 {
		return domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(s.apiKeyHash, []byte(key)); err != nil {
		return domain.ErrUnauthorized
	}
	return nil
}

// IssueServiceToken signs a short-lived token identifying this service for
// outbound calls. Returns an empty token when no JWT secret is configured.
func (s *AuthService) IssueServiceToken() (string, error) {
	if len(s.secret) == 0 {
		return "", nil
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": s.subject,
		"iat": now.Unix(),
		"exp": now.Add(serviceTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign service token: %w", err)
	}
	return signed, nil
}
