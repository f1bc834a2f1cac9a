package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/propertyflow/propertyflow/internal/auth"
)

// Auth authenticates requests with a bearer JWT. Verified identities are
// cached in-process keyed by a hash of the credential (never the raw value);
// a hit skips signature validation for the cache TTL window.
func Auth(jwtSecret string, authCache *auth.Cache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := ExtractBearer(r)
			if tok == "" {
				http.Error(w, `{"title":"Unauthorized","status":401,"detail":"missing or invalid credentials"}`, http.StatusUnauthorized)
				return
			}

			hash := auth.TokenHash(tok)
			if authCache != nil {
				if ident, ok := authCache.Get(hash); ok {
					next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), ident)))
					return
				}
			}

			ident, ok := authenticateJWT(tok, jwtSecret)
			if !ok {
				http.Error(w, `{"title":"Unauthorized","status":401,"detail":"missing or invalid credentials"}`, http.StatusUnauthorized)
				return
			}

			if authCache != nil {
				authCache.Set(hash, ident)
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), ident)))
		})
	}
}

// ExtractBearer returns the bearer credential from the Authorization header,
// or "" when absent. Exported for handlers that need the raw credential to
// derive its cache hash (never to log or store it).
func ExtractBearer(r *http.Request) string {
	a := r.Header.Get("Authorization")
	if len(a) > 7 && strings.EqualFold(a[:7], "bearer ") {
		return a[7:]
	}
	return ""
}

func authenticateJWT(tokenStr, secret string) (*auth.Identity, bool) {
	claims, err := auth.ValidateToken(secret, tokenStr)
	if err != nil {
		return nil, false
	}

	// Refresh tokens authenticate nothing but the refresh endpoint.
	if claims.TokenType != "access" {
		return nil, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, false
	}

	payload := claims.TokenPayload
	return &auth.Identity{
		UserID:  userID,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
		Payload: &payload,
	}, true
}

func withIdentity(ctx context.Context, ident *auth.Identity) context.Context {
	return context.WithValue(ctx, ContextKeyIdentity, ident)
}
