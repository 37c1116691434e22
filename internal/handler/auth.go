package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pedidos/internal/httpx"
	"pedidos/internal/model"
	"pedidos/internal/service"
)

const tokenTTL = 24 * time.Hour

type Authenticator interface {
	Register(ctx context.Context, reg service.Registration) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type loginResponse struct {
	Message string `json:"mensagem"`
	Token   string `json:"token"`
}

// IssueToken signs a session token carrying the user id and role.
func IssueToken(user *model.User, secret string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":      user.ID,
		"tipo_usuario": string(user.Role),
		"iat":          jwt.NewNumericDate(now),
		"exp":          jwt.NewNumericDate(now.Add(tokenTTL)),
	})
	return token.SignedString([]byte(secret))
}

func LoginHandler(authSvc Authenticator, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.BadRequest(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}

		if strings.TrimSpace(req.Email) == "" || req.Password == "" {
			httpx.BadRequest(w, http.StatusBadRequest, msgInvalidData)
			return
		}

		user, err := authSvc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}

		tokenString, err := IssueToken(user, secret, time.Now())
		if err != nil {
			writeError(w, r, err)
			return
		}

		w.Header().Set("Authorization", "Bearer "+tokenString)
		httpx.WriteJSON(w, http.StatusOK, loginResponse{Message: "Login bem-sucedido", Token: tokenString})
	}
}

func ProfileHandler(authSvc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, ok := identity(w, r)
		if !ok {
			return
		}

		user, err := authSvc.GetByID(r.Context(), who.UserID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, user)
	}
}
