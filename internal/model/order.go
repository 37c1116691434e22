package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID                  int64     `json:"id"`
	Code                string    `json:"codigo_pedido"`
	OwnerID             string    `json:"gestor_id"`
	ProductID           int64     `json:"produto_id"`
	Quantity            int       `json:"quantidade"`
	Status              Status    `json:"status"`
	RemoteFabricationID *string   `json:"id_fabricacao"`
	CreatedAt           time.Time `json:"data_criacao"`
}

// OrderView is an order joined with the product columns shown in listings.
type OrderView struct {
	Order
	ProductName  string          `json:"nome_produto"`
	ProductPrice decimal.Decimal `json:"preco"`
}
