package mw

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pedidos/internal/httpx"
	"pedidos/internal/model"
)

type contextKey string

const identityCtxKey contextKey = "identity"

// Identity is the authenticated requester carried by the session token.
type Identity struct {
	UserID string
	Role   model.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role.IsAdmin()
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey).(Identity)
	return id, ok
}

// ParseToken validates an HS256 token and extracts the requester identity.
func ParseToken(tokenString, jwtSecret string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Identity{}, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return Identity{}, errors.New("user_id not found in token")
	}
	if _, err := uuid.Parse(userID); err != nil {
		return Identity{}, errors.New("user_id is not a uuid")
	}

	role, _ := claims["tipo_usuario"].(string)
	if role == "" {
		role = string(model.RoleCustomer)
	}

	return Identity{UserID: userID, Role: model.Role(role)}, nil
}

func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httpx.Fail(w, http.StatusUnauthorized, "Token não fornecido")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				httpx.Fail(w, http.StatusUnauthorized, "Token não fornecido")
				return
			}

			id, err := ParseToken(parts[1], jwtSecret)
			if err != nil {
				httpx.Fail(w, http.StatusForbidden, "Token inválido ou expirado")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok {
			httpx.Fail(w, http.StatusUnauthorized, "Token não fornecido")
			return
		}
		if !id.IsAdmin() {
			httpx.Fail(w, http.StatusForbidden, "Acesso negado")
			return
		}
		next.ServeHTTP(w, r)
	})
}
