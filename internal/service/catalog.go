package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"pedidos/internal/model"
)

var (
	minPrice = decimal.RequireFromString("0.1")
	maxPrice = decimal.NewFromInt(1000000)
)

type CatalogService struct {
	db *sql.DB
}

func NewCatalogService(db *sql.DB) *CatalogService {
	return &CatalogService{db: db}
}

const productColumns = `id, nome, preco, descricao, imagem, tamanho, rotulo, tipo_embalagem, cor_tampa, acabamento_superficie`

func validateProduct(p model.Product) error {
	if strings.TrimSpace(p.Name) == "" ||
		strings.TrimSpace(p.Description) == "" ||
		strings.TrimSpace(p.Image) == "" ||
		p.Price.LessThan(minPrice) ||
		p.Price.GreaterThan(maxPrice) ||
		!p.HasValidAttributes() {
		return ErrInvalidProductData
	}
	return nil
}

func (s *CatalogService) Create(ctx context.Context, p model.Product) (*model.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO produtos (nome, preco, descricao, imagem, tamanho, rotulo, tipo_embalagem, cor_tampa, acabamento_superficie)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		p.Name, p.Price, p.Description, p.Image, p.Size, p.Label, p.Packaging, p.CapColor, p.Finish,
	).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &p, nil
}

func (s *CatalogService) Update(ctx context.Context, p model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE produtos
		 SET nome = $1, preco = $2, descricao = $3, imagem = $4,
		     tamanho = $5, rotulo = $6, tipo_embalagem = $7, cor_tampa = $8, acabamento_superficie = $9
		 WHERE id = $10`,
		p.Name, p.Price, p.Description, p.Image, p.Size, p.Label, p.Packaging, p.CapColor, p.Finish, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *CatalogService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM produtos WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Image, &p.Size, &p.Label, &p.Packaging, &p.CapColor, &p.Finish)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (s *CatalogService) List(ctx context.Context) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+productColumns+` FROM produtos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Image, &p.Size, &p.Label, &p.Packaging, &p.CapColor, &p.Finish); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return products, nil
}
