package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pedidos/internal/httpx"
	"pedidos/internal/model"
)

type Catalog interface {
	Create(ctx context.Context, p model.Product) (*model.Product, error)
	Update(ctx context.Context, p model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := positiveInt(chi.URLParam(r, "id"))
	if !ok {
		httpx.BadRequest(w, http.StatusBadRequest, msgProductIDMissing)
	}
	return id, ok
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (model.Product, bool) {
	var p model.Product
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&p); err != nil {
		httpx.BadRequest(w, http.StatusBadRequest, msgInvalidData)
		return model.Product{}, false
	}
	return p, true
}

func CreateProductHandler(catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := decodeProduct(w, r)
		if !ok {
			return
		}

		if _, err := catalog.Create(r.Context(), p); err != nil {
			writeError(w, r, err)
			return
		}

		httpx.Message(w, http.StatusCreated, "Produto cadastrado com sucesso.")
	}
}

func UpdateProductHandler(catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := productIDParam(w, r)
		if !ok {
			return
		}
		p, ok := decodeProduct(w, r)
		if !ok {
			return
		}
		p.ID = id

		if err := catalog.Update(r.Context(), p); err != nil {
			writeError(w, r, err)
			return
		}

		httpx.Message(w, http.StatusOK, "Produto editado com sucesso.")
	}
}

func GetProductHandler(catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := productIDParam(w, r)
		if !ok {
			return
		}

		p, err := catalog.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, p)
	}
}

func ListProductsHandler(catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := catalog.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, products)
	}
}
