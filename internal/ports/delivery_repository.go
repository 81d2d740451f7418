package ports

import (
	"context"
	"time"

	"aguaruta-service/internal/domain"
)

// DeliveryFilter narrows a listing to a date range plus optional criteria.
// Desde and Hasta are inclusive and compare on the date only.
type DeliveryFilter struct {
	Desde time.Time
	Hasta time.Time

	// Exact truck match, case-insensitive. Empty means any truck.
	Camion string
	// Substring match on the recipient name, case-insensitive.
	Nombre string
	// Exact status code. Nil means any status.
	Estado *domain.Status
	// Restrict to records whose status is a non-delivered outcome.
	NotDelivered bool
}

// Port: a boundary for storing and retrieving delivery records.
type DeliveryRepository interface {
	// Insert stores a new record and fills in its ID and CreadoEn.
	// Returns domain.ErrDuplicateDelivery when (fecha, camion, nombre)
	// already exists.
	Insert(ctx context.Context, d *domain.Delivery) error

	// List returns records matching the filter, newest first
	// (fecha DESC, id DESC).
	List(ctx context.Context, f DeliveryFilter) ([]*domain.Delivery, error)
}
