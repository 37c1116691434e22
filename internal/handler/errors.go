package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"pedidos/internal/httpx"
	"pedidos/internal/service"
)

const (
	msgInvalidData      = "Dados inválidos. Confira os campos e tente novamente."
	msgInvalidJSON      = "JSON inválido."
	msgInvalidQuantity  = "Quantidade inválida."
	msgProductIDMissing = "ID do produto é obrigatório."
	msgOrderIDMissing   = "ID do pedido é obrigatório."
	msgOwnerIDMissing   = "ID do gestor é obrigatório."
	msgInvalidStatus    = "Status inválido."
	msgOrderNotFound    = "Pedido não encontrado."
	msgProductNotFound  = "Produto não encontrado."
	msgUserNotFound     = "Usuário não encontrado."
	msgForbidden        = "Acesso negado"
	msgBadCredentials   = "Email ou senha inválidos"
	msgEmailTaken       = "E-mail já cadastrado."
	msgDispatchFailed   = "Falha ao enviar pedido para fabricação"
)

// writeError converts a service error into the JSON error contract. Internal
// details are logged, never returned.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var dispatchErr *service.DispatchError
	switch {
	case errors.Is(err, service.ErrInvalidQuantity):
		httpx.BadRequest(w, http.StatusBadRequest, msgInvalidQuantity)
	case errors.Is(err, service.ErrInvalidProduct):
		httpx.BadRequest(w, http.StatusBadRequest, msgProductIDMissing)
	case errors.Is(err, service.ErrInvalidStatus):
		httpx.BadRequest(w, http.StatusBadRequest, msgInvalidStatus)
	case errors.Is(err, service.ErrInvalidProductData), errors.Is(err, service.ErrInvalidUserData):
		httpx.BadRequest(w, http.StatusBadRequest, msgInvalidData)
	case errors.Is(err, service.ErrOrderNotFound):
		httpx.BadRequest(w, http.StatusNotFound, msgOrderNotFound)
	case errors.Is(err, service.ErrProductNotFound):
		httpx.BadRequest(w, http.StatusNotFound, msgProductNotFound)
	case errors.Is(err, service.ErrUserNotFound):
		httpx.BadRequest(w, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, service.ErrEmailTaken):
		httpx.BadRequest(w, http.StatusConflict, msgEmailTaken)
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.Fail(w, http.StatusUnauthorized, msgBadCredentials)
	case errors.Is(err, service.ErrForbidden):
		httpx.Fail(w, http.StatusForbidden, msgForbidden)
	case errors.As(err, &dispatchErr):
		slog.Error("dispatch failed", "path", r.URL.Path, "order_id", dispatchErr.OrderID, "error", err)
		httpx.Fail(w, http.StatusBadGateway, msgDispatchFailed)
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		httpx.Fail(w, http.StatusInternalServerError, httpx.MsgInternal)
	}
}
