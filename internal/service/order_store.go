package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"pedidos/internal/model"
)

// OrderStore persists orders. It holds no business rules.
type OrderStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db, now: time.Now}
}

func (s *OrderStore) Create(ctx context.Context, o model.Order) (*model.Order, error) {
	created := s.now().UTC()
	o.Code = strconv.FormatInt(created.UnixNano(), 10)
	o.CreatedAt = created
	o.RemoteFabricationID = nil

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO pedidos (codigo_pedido, gestor_id, produto_id, quantidade, status, data_criacao)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		o.Code, o.OwnerID, o.ProductID, o.Quantity, string(o.Status), o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	return &o, nil
}

func (s *OrderStore) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	var remote sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, codigo_pedido, gestor_id, produto_id, quantidade, status, id_fabricacao, data_criacao
		 FROM pedidos WHERE id = $1`,
		id,
	).Scan(&o.ID, &o.Code, &o.OwnerID, &o.ProductID, &o.Quantity, &o.Status, &remote, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if remote.Valid {
		o.RemoteFabricationID = &remote.String
	}
	return &o, nil
}

const listOrdersSQL = `
	SELECT p.id, p.codigo_pedido, p.gestor_id, p.produto_id, p.quantidade, p.status,
	       p.id_fabricacao, p.data_criacao, pr.nome, pr.preco
	FROM pedidos p
	JOIN produtos pr ON p.produto_id = pr.id`

func (s *OrderStore) ListByOwner(ctx context.Context, ownerID string) ([]model.OrderView, error) {
	rows, err := s.db.QueryContext(ctx, listOrdersSQL+`
	WHERE p.gestor_id = $1
	ORDER BY p.data_criacao DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	return scanOrderViews(rows)
}

func (s *OrderStore) ListAll(ctx context.Context) ([]model.OrderView, error) {
	rows, err := s.db.QueryContext(ctx, listOrdersSQL+`
	ORDER BY p.data_criacao DESC`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	return scanOrderViews(rows)
}

func scanOrderViews(rows *sql.Rows) ([]model.OrderView, error) {
	defer rows.Close()

	orders := []model.OrderView{}
	for rows.Next() {
		var v model.OrderView
		var remote sql.NullString
		if err := rows.Scan(&v.ID, &v.Code, &v.OwnerID, &v.ProductID, &v.Quantity, &v.Status,
			&remote, &v.CreatedAt, &v.ProductName, &v.ProductPrice); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if remote.Valid {
			v.RemoteFabricationID = &remote.String
		}
		orders = append(orders, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return orders, nil
}

// UpdateStatus returns the number of rows touched; 0 means no such order.
func (s *OrderStore) UpdateStatus(ctx context.Context, id int64, status model.Status) (int64, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE pedidos SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return 0, fmt.Errorf("update order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update order status: %w", err)
	}
	return n, nil
}

// SetRemoteFabricationID links the remote job id. The id is written at most
// once: rows that already carry one are left untouched and not counted.
func (s *OrderStore) SetRemoteFabricationID(ctx context.Context, id int64, remoteID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE pedidos SET id_fabricacao = $1 WHERE id = $2 AND id_fabricacao IS NULL`,
		remoteID, id,
	)
	if err != nil {
		return 0, fmt.Errorf("set fabrication id: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("set fabrication id: %w", err)
	}
	return n, nil
}

// ListUndispatched returns pending orders without a remote id created before
// olderThan, oldest first.
func (s *OrderStore) ListUndispatched(ctx context.Context, olderThan time.Time, limit int) ([]model.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, codigo_pedido, gestor_id, produto_id, quantidade, status, data_criacao
		FROM pedidos
		WHERE id_fabricacao IS NULL AND status = $1 AND data_criacao < $2
		ORDER BY data_criacao ASC
		LIMIT $3
	`, string(model.StatusPending), olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("query undispatched: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Code, &o.OwnerID, &o.ProductID, &o.Quantity, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return orders, nil
}
