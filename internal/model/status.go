package model

type Status string

const (
	StatusPending   Status = "Pendente"
	StatusPlaced    Status = "Pedido realizado"
	StatusPreparing Status = "Pedido em preparo"
	StatusShipped   Status = "Pedido enviado"
	StatusDelivered Status = "Pedido entregue"
	StatusCancelled Status = "Pedido cancelado"
	InitialStatus          = StatusPending
)

var allowedStatuses = map[Status]struct{}{
	StatusPending:   {},
	StatusPlaced:    {},
	StatusPreparing: {},
	StatusShipped:   {},
	StatusDelivered: {},
	StatusCancelled: {},
}

// Valid reports whether s belongs to the status allow-list. Any allowed
// status may follow any other; no transition order is enforced.
func (s Status) Valid() bool {
	_, ok := allowedStatuses[s]
	return ok
}

func Statuses() []Status {
	return []Status{StatusPending, StatusPlaced, StatusPreparing, StatusShipped, StatusDelivered, StatusCancelled}
}
