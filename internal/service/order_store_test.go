package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedidos/internal/model"
)

func newMockStore(t *testing.T) (*OrderStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewOrderStore(db)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return s, mock
}

func TestOrderStoreCreate(t *testing.T) {
	s, mock := newMockStore(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO pedidos`)).
		WithArgs("1709287200000000000", owner, int64(7), 3, "Pendente", created).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	o, err := s.Create(context.Background(), model.Order{OwnerID: owner, ProductID: 7, Quantity: 3, Status: model.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, int64(11), o.ID)
	assert.Equal(t, "1709287200000000000", o.Code)
	assert.Equal(t, created, o.CreatedAt)
	assert.Nil(t, o.RemoteFabricationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderStoreCreateFailure(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO pedidos`)).WillReturnError(errors.New("connection reset"))

	_, err := s.Create(context.Background(), model.Order{OwnerID: owner, ProductID: 7, Quantity: 1, Status: model.StatusPending})
	assert.ErrorContains(t, err, "insert order")
}

func TestOrderStoreGetByID(t *testing.T) {
	s, mock := newMockStore(t)
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cols := []string{"id", "codigo_pedido", "gestor_id", "produto_id", "quantidade", "status", "id_fabricacao", "data_criacao"}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM pedidos WHERE id = $1`)).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(3), "c", owner, int64(7), 2, "Pedido enviado", "job-1", at))

	o, err := s.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, model.StatusShipped, o.Status)
	require.NotNil(t, o.RemoteFabricationID)
	assert.Equal(t, "job-1", *o.RemoteFabricationID)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM pedidos WHERE id = $1`)).WithArgs(int64(4)).WillReturnError(sql.ErrNoRows)
	_, err = s.GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderStoreListByOwner(t *testing.T) {
	s, mock := newMockStore(t)
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cols := []string{"id", "codigo_pedido", "gestor_id", "produto_id", "quantidade", "status", "id_fabricacao", "data_criacao", "nome", "preco"}

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.gestor_id = $1`)).WithArgs(owner).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), "a", owner, int64(7), 1, "Pendente", nil, at, "Pote", "19.90").
			AddRow(int64(2), "b", owner, int64(7), 4, "Pedido entregue", "job-2", at, "Pote", "19.90"))

	views, err := s.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Pote", views[0].ProductName)
	assert.True(t, decimal.RequireFromString("19.90").Equal(views[0].ProductPrice))
	assert.Nil(t, views[0].RemoteFabricationID)
	assert.Equal(t, "job-2", *views[1].RemoteFabricationID)
}

func TestOrderStoreListAllEmpty(t *testing.T) {
	s, mock := newMockStore(t)
	cols := []string{"id", "codigo_pedido", "gestor_id", "produto_id", "quantidade", "status", "id_fabricacao", "data_criacao", "nome", "preco"}
	mock.ExpectQuery(regexp.QuoteMeta(`JOIN produtos pr ON p.produto_id = pr.id`)).WillReturnRows(sqlmock.NewRows(cols))

	views, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestOrderStoreUpdateStatus(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE pedidos SET status = $1 WHERE id = $2`)).
		WithArgs("Pedido entregue", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE pedidos SET status = $1 WHERE id = $2`)).
		WithArgs("Pedido entregue", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := s.UpdateStatus(context.Background(), 1, model.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.UpdateStatus(context.Background(), 2, model.StatusDelivered)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderStoreSetRemoteFabricationIDOnlyOnce(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE pedidos SET id_fabricacao = $1 WHERE id = $2 AND id_fabricacao IS NULL`)).
		WithArgs("job-9", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := s.SetRemoteFabricationID(context.Background(), 5, "job-9")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderStoreListUndispatched(t *testing.T) {
	s, mock := newMockStore(t)
	cutoff := time.Date(2024, 3, 1, 9, 59, 0, 0, time.UTC)
	cols := []string{"id", "codigo_pedido", "gestor_id", "produto_id", "quantidade", "status", "data_criacao"}

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id_fabricacao IS NULL AND status = $1 AND data_criacao < $2`)).
		WithArgs("Pendente", cutoff, 10).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(8), "c", owner, int64(7), 1, "Pendente", cutoff))

	orders, err := s.ListUndispatched(context.Background(), cutoff, 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(8), orders[0].ID)
}
