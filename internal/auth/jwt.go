package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/propertyflow/propertyflow/internal/domain"
)

// TokenPayload carries the claim namespaces that tenant resolution consults.
// UserMetadata takes priority over AppMetadata, which takes priority over the
// root-level TenantID; the resolver owns that ordering.
type TokenPayload struct {
	TenantID     string         `json:"tenant_id,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
	AppMetadata  map[string]any `json:"app_metadata,omitempty"`
}

// Claims holds the JWT token payload. Field types and JSON tags are compatible
// with the middleware so tokens issued here are parsed correctly.
type Claims struct {
	jwt.RegisteredClaims
	TokenPayload
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	TokenType string `json:"typ"` // "access" or "refresh"
}

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// ErrInvalidToken is returned when a JWT cannot be parsed or has expired.
var ErrInvalidToken = errors.New("auth: invalid or expired token")

// IssueAccessToken creates a signed JWT access token for a user. The token
// payload embeds the user's tenant metadata namespaces so resolution on later
// requests takes the token fast path.
func IssueAccessToken(secret string, u *domain.User, ttl time.Duration) (string, error) {
	return issueToken(secret, u, tokenTypeAccess, ttl)
}

// IssueRefreshToken creates a signed JWT refresh token.
func IssueRefreshToken(secret string, u *domain.User, ttl time.Duration) (string, error) {
	return issueToken(secret, u, tokenTypeRefresh, ttl)
}

func issueToken(secret string, u *domain.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "propertyflow",
		},
		TokenPayload: TokenPayload{
			TenantID:     u.TenantID,
			UserMetadata: u.UserMetadata,
			AppMetadata:  u.AppMetadata,
		},
		UserID:    u.ID.String(),
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("auth.issueToken: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and validates a JWT token string. Returns the embedded claims.
func ValidateToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("auth.ValidateToken: %w", ErrInvalidToken)
	}

	if !token.Valid {
		return nil, fmt.Errorf("auth.ValidateToken: %w", ErrInvalidToken)
	}

	return claims, nil
}

// Identity is the verified caller placed in the request context by the auth
// middleware. Payload holds the decoded claim namespaces for tenant resolution.
type Identity struct {
	UserID  uuid.UUID
	Email   string
	IsAdmin bool
	Payload *TokenPayload
}
