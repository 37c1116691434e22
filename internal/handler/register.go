package handler

import (
	"encoding/json"
	"net/http"

	"pedidos/internal/httpx"
	"pedidos/internal/service"
)

type registerRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Phone    string `json:"telefone"`
	Password string `json:"senha"`
}

func RegisterHandler(authSvc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.BadRequest(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}

		_, err := authSvc.Register(r.Context(), service.Registration{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Password: req.Password,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		httpx.Message(w, http.StatusCreated, "Cadastrado com sucesso")
	}
}
