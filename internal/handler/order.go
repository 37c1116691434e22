package handler

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pedidos/internal/httpx"
	"pedidos/internal/model"
	"pedidos/internal/mw"
)

type OrderManager interface {
	CreateOrder(ctx context.Context, ownerID string, quantity int, productID int64) (*model.Order, error)
	GetOrder(ctx context.Context, id int64, requesterID string, role model.Role) (*model.Order, error)
	ListOrders(ctx context.Context, role model.Role) ([]model.OrderView, error)
	ListOwnerOrders(ctx context.Context, ownerID, requesterID string, role model.Role) ([]model.OrderView, error)
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
}

type createOrderRequest struct {
	Quantity  any `json:"quantidade"`
	ProductID any `json:"produtoId"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// positiveInt accepts a JSON number or a numeric string holding an integer >= 1.
func positiveInt(v any) (int64, bool) {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func orderIDParam(r *http.Request) (int64, bool) {
	return positiveInt(chi.URLParam(r, "id"))
}

func identity(w http.ResponseWriter, r *http.Request) (mw.Identity, bool) {
	id, ok := mw.IdentityFrom(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "Token não fornecido")
	}
	return id, ok
}

func CreateOrderHandler(orders OrderManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, ok := identity(w, r)
		if !ok {
			return
		}

		var req createOrderRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
		dec.UseNumber()
		if err := dec.Decode(&req); err != nil {
			httpx.BadRequest(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}

		quantity, ok := positiveInt(req.Quantity)
		if !ok || quantity > math.MaxInt32 {
			httpx.BadRequest(w, http.StatusBadRequest, msgInvalidQuantity)
			return
		}
		productID, ok := positiveInt(req.ProductID)
		if !ok {
			httpx.BadRequest(w, http.StatusBadRequest, msgProductIDMissing)
			return
		}

		if _, err := orders.CreateOrder(r.Context(), who.UserID, int(quantity), productID); err != nil {
			writeError(w, r, err)
			return
		}

		httpx.Message(w, http.StatusCreated, "Pedido feito com sucesso")
	}
}

func ListOrdersHandler(orders OrderManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, ok := identity(w, r)
		if !ok {
			return
		}

		list, err := orders.ListOrders(r.Context(), who.Role)
		if err != nil {
			writeError(w, r, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

// ListOwnerOrdersHandler serves GET /pedidos/{id} where id is the owner.
func ListOwnerOrdersHandler(orders OrderManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, ok := identity(w, r)
		if !ok {
			return
		}

		ownerID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httpx.BadRequest(w, http.StatusBadRequest, msgOwnerIDMissing)
			return
		}

		list, err := orders.ListOwnerOrders(r.Context(), ownerID.String(), who.UserID, who.Role)
		if err != nil {
			writeError(w, r, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func GetOrderHandler(orders OrderManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, ok := identity(w, r)
		if !ok {
			return
		}

		id, ok := orderIDParam(r)
		if !ok {
			httpx.BadRequest(w, http.StatusBadRequest, msgOrderIDMissing)
			return
		}

		order, err := orders.GetOrder(r.Context(), id, who.UserID, who.Role)
		if err != nil {
			writeError(w, r, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, order)
	}
}

func UpdateStatusHandler(orders OrderManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := orderIDParam(r)
		if !ok {
			httpx.BadRequest(w, http.StatusBadRequest, msgOrderIDMissing)
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
			httpx.BadRequest(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}

		if err := orders.UpdateStatus(r.Context(), id, model.Status(req.Status)); err != nil {
			writeError(w, r, err)
			return
		}

		httpx.Message(w, http.StatusOK, "Status atualizado com sucesso")
	}
}
