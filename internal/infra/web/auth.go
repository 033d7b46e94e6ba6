package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"internship-marketplace/internal/domain/model"
)

// Identity is the authenticated caller, extracted once per request and passed
// explicitly into use-case calls. There is no ambient current-user state.
type Identity struct {
	UserID string
	Role   model.UserRole
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthManager validates bearer session tokens minted by the auth subsystem.
type AuthManager struct {
	secret []byte
}

func NewAuthManager(secret string) *AuthManager {
	return &AuthManager{secret: []byte(secret)}
}

// Mint issues a session token; used by tests and dev tooling.
func (a *AuthManager) Mint(id Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *AuthManager) parse(tokenString string) (Identity, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: claims.Subject, Role: model.UserRole(claims.Role)}, nil
}

type identityKey struct{}

// IdentityFrom returns the authenticated identity set by Middleware.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// Middleware rejects requests without a valid bearer token and stores the
// resolved Identity on the request context for handlers to pick up.
func (a *AuthManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeError(w, http.StatusUnauthorized, "Unauthorized: malformed token")
			return
		}
		id, err := a.parse(parts[1])
		if err != nil || id.UserID == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, id)))
	})
}

// RequireRole guards a subtree to one role; it assumes Middleware ran first.
func RequireRole(role model.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFrom(r.Context())
			if !ok || id.Role != role {
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
