package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pedidos/internal/events"
	"pedidos/internal/model"
)

type orderRepository interface {
	Create(ctx context.Context, o model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.OrderView, error)
	ListAll(ctx context.Context) ([]model.OrderView, error)
	UpdateStatus(ctx context.Context, id int64, status model.Status) (int64, error)
	SetRemoteFabricationID(ctx context.Context, id int64, remoteID string) (int64, error)
	ListUndispatched(ctx context.Context, olderThan time.Time, limit int) ([]model.Order, error)
}

type productLookup interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
}

type dispatcher interface {
	Dispatch(ctx context.Context, order model.Order, product model.Product) (string, error)
}

type OrderManagerOptions struct {
	// Dispatcher may be nil, in which case orders are only persisted.
	Dispatcher dispatcher
	Publisher  events.Publisher
	// Strict makes CreateOrder return the *DispatchError instead of only
	// logging it. The order stays persisted either way.
	Strict bool
	// ReconcileGrace keeps reconciliation away from orders whose creating
	// request may still be dispatching them.
	ReconcileGrace time.Duration
}

// OrderManager drives the order lifecycle: creation, fabrication dispatch,
// remote id linkage and administrative status changes.
type OrderManager struct {
	store      orderRepository
	catalog    productLookup
	dispatcher dispatcher
	publisher  events.Publisher
	strict     bool
	grace      time.Duration
	now        func() time.Time
}

func NewOrderManager(store orderRepository, catalog productLookup, opts OrderManagerOptions) *OrderManager {
	m := &OrderManager{
		store:      store,
		catalog:    catalog,
		dispatcher: opts.Dispatcher,
		publisher:  opts.Publisher,
		strict:     opts.Strict,
		grace:      opts.ReconcileGrace,
		now:        time.Now,
	}
	if m.publisher == nil {
		m.publisher = events.Nop{}
	}
	if m.grace <= 0 {
		m.grace = time.Minute
	}
	return m
}

// CreateOrder validates and persists a new order, then hands it to the
// fabrication queue. A dispatch failure leaves the order Pendente with no
// remote id; it is returned to the caller only in strict mode.
func (m *OrderManager) CreateOrder(ctx context.Context, ownerID string, quantity int, productID int64) (*model.Order, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if productID < 1 {
		return nil, ErrInvalidProduct
	}

	product, err := m.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	order, err := m.store.Create(ctx, model.Order{
		OwnerID:   ownerID,
		ProductID: product.ID,
		Quantity:  quantity,
		Status:    model.InitialStatus,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	slog.Info("order created", "order_id", order.ID, "code", order.Code, "owner", ownerID)
	m.publish(ctx, order)

	if m.dispatcher == nil {
		return order, nil
	}

	// The request may be cancelled by the client; the dispatch is bounded by
	// the fabrication client timeout instead.
	if _, err := m.dispatchAndLink(context.WithoutCancel(ctx), order, *product); err != nil {
		slog.Error("order dispatch failed", "order_id", order.ID, "error", err)
		if m.strict {
			return order, err
		}
	}

	return order, nil
}

// dispatchAndLink runs strictly after the order row exists and writes the
// remote id only after the queue has answered. linked reports whether this
// call stored the id.
func (m *OrderManager) dispatchAndLink(ctx context.Context, order *model.Order, product model.Product) (linked bool, err error) {
	remoteID, err := m.dispatcher.Dispatch(ctx, *order, product)
	if err != nil {
		var de *DispatchError
		if !errors.As(err, &de) {
			err = &DispatchError{OrderID: order.ID, Err: err}
		}
		return false, err
	}

	n, err := m.store.SetRemoteFabricationID(ctx, order.ID, remoteID)
	if err != nil {
		return false, &DispatchError{OrderID: order.ID, Err: fmt.Errorf("link remote id %s: %w", remoteID, err)}
	}
	if n == 0 {
		slog.Warn("remote id not linked, order already carries one", "order_id", order.ID, "remote_id", remoteID)
		return false, nil
	}

	order.RemoteFabricationID = &remoteID
	slog.Info("order dispatched", "order_id", order.ID, "remote_id", remoteID)
	return true, nil
}

// GetOrder returns one order to its owner or to an administrator.
func (m *OrderManager) GetOrder(ctx context.Context, id int64, requesterID string, role model.Role) (*model.Order, error) {
	order, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !role.IsAdmin() && order.OwnerID != requesterID {
		return nil, ErrForbidden
	}
	return order, nil
}

func (m *OrderManager) ListOrders(ctx context.Context, role model.Role) ([]model.OrderView, error) {
	if !role.IsAdmin() {
		return nil, ErrForbidden
	}
	return m.store.ListAll(ctx)
}

// ListOwnerOrders lists the orders of ownerID. Customers may only read their
// own orders.
func (m *OrderManager) ListOwnerOrders(ctx context.Context, ownerID, requesterID string, role model.Role) ([]model.OrderView, error) {
	if !role.IsAdmin() && ownerID != requesterID {
		return nil, ErrForbidden
	}
	return m.store.ListByOwner(ctx, ownerID)
}

func (m *OrderManager) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	n, err := m.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if n == 0 {
		return ErrOrderNotFound
	}

	slog.Info("order status updated", "order_id", id, "status", status)

	// The event carries the owner, so the updated row is read back.
	order, err := m.store.GetByID(ctx, id)
	if err != nil {
		slog.Warn("order event without owner, read back failed", "order_id", id, "error", err)
		order = &model.Order{ID: id, Status: status}
	}
	m.publish(ctx, order)
	return nil
}

// Reconcile re-dispatches pending orders that never got a remote id. Linkage
// only fills an empty id, so running it repeatedly is safe.
func (m *OrderManager) Reconcile(ctx context.Context, limit int) (int, error) {
	if m.dispatcher == nil {
		return 0, nil
	}

	orders, err := m.store.ListUndispatched(ctx, m.now().Add(-m.grace), limit)
	if err != nil {
		return 0, fmt.Errorf("list undispatched: %w", err)
	}

	linked := 0
	for i := range orders {
		order := &orders[i]
		product, err := m.catalog.GetByID(ctx, order.ProductID)
		if err != nil {
			slog.Error("reconcile: product lookup failed", "order_id", order.ID, "error", err)
			continue
		}
		ok, err := m.dispatchAndLink(ctx, order, *product)
		if err != nil {
			slog.Error("reconcile: dispatch failed", "order_id", order.ID, "error", err)
			continue
		}
		if ok {
			linked++
		}
	}

	return linked, nil
}

func (m *OrderManager) publish(ctx context.Context, order *model.Order) {
	ev := events.OrderEvent{
		OrderID: order.ID,
		OwnerID: order.OwnerID,
		Status:  order.Status,
		At:      m.now().UTC(),
	}
	if err := m.publisher.PublishOrder(ctx, ev); err != nil {
		slog.Warn("order event not published", "order_id", order.ID, "error", err)
	}
}
