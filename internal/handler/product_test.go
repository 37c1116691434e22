package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedidos/internal/model"
	"pedidos/internal/service"
)

const productJSON = `{
	"nome": "Pote decorado",
	"preco": 49.9,
	"descricao": "Pote de vidro",
	"imagem": "pote.png",
	"tamanho": "Médio",
	"rotulo": "Personalizado",
	"tipo_embalagem": "Vidro",
	"cor_tampa": "Laranja",
	"acabamento_superficie": "Brilhante"
}`

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t, service.OrderManagerOptions{})

	rr, body := env.do(t, http.MethodPost, "/produto", bearer(t, adminID, model.RoleAdmin), productJSON)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Produto cadastrado com sucesso.", body["mensagem"])
	require.Len(t, env.catalog.created, 1)
	assert.Equal(t, "49.9", env.catalog.created[0].Price.String())
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	env := newTestEnv(t, service.OrderManagerOptions{})

	rr, _ := env.do(t, http.MethodPost, "/produto", bearer(t, customerID, model.RoleCustomer), productJSON)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, env.catalog.created)
}

func TestCreateProductInvalid(t *testing.T) {
	env := newTestEnv(t, service.OrderManagerOptions{})
	env.catalog.createErr = service.ErrInvalidProductData

	rr, body := env.do(t, http.MethodPost, "/produto", bearer(t, adminID, model.RoleAdmin), productJSON)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Dados inválidos. Confira os campos e tente novamente.", body["error"])
}

func TestCreateProductInternalError(t *testing.T) {
	env := newTestEnv(t, service.OrderManagerOptions{})
	env.catalog.createErr = errors.New("Falha no banco")

	rr, body := env.do(t, http.MethodPost, "/produto", bearer(t, adminID, model.RoleAdmin), productJSON)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Erro interno no servidor", body["erro"])
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t, service.OrderManagerOptions{})

	rr, body := env.do(t, http.MethodGet, "/produto/7", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Pote", body["nome"])

	rr, body = env.do(t, http.MethodGet, "/produto/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "ID do produto é obrigatório.", body["error"])

	rr, body = env.do(t, http.MethodGet, "/produto/404", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Produto não encontrado.", body["error"])
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t, service.OrderManagerOptions{})
	admin := bearer(t, adminID, model.RoleAdmin)

	rr, body := env.do(t, http.MethodPut, "/produto/7", admin, productJSON)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Produto editado com sucesso.", body["mensagem"])
	assert.Equal(t, "Laranja", env.catalog.products[7].CapColor)

	rr, _ = env.do(t, http.MethodPut, "/produto/8", admin, productJSON)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t, service.OrderManagerOptions{})

	rr, _ := env.do(t, http.MethodGet, "/produto", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"cor_tampa":"Verde"`)
}
