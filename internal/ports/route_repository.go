package ports

import (
	"context"
	"errors"

	"aguaruta-service/internal/domain"
)

// ErrPointNotFound is returned by UpdatePoint when no row has the given id.
var ErrPointNotFound = errors.New("route point not found")

// RoutePointUpdate carries the fields of a partial update. Nil fields are
// left untouched.
type RoutePointUpdate struct {
	Camion   *string
	Nombre   *string
	Dia      *string
	Litros   *float64
	Telefono *string
	Latitud  *float64
	Longitud *float64
}

// Empty reports whether the update would change nothing.
func (u RoutePointUpdate) Empty() bool {
	return u.Camion == nil && u.Nombre == nil && u.Dia == nil &&
		u.Litros == nil && u.Telefono == nil && u.Latitud == nil && u.Longitud == nil
}

// Port: a boundary for the standing distribution route.
type RouteRepository interface {
	// ListPoints returns the whole active route ordered by camion, dia, nombre.
	ListPoints(ctx context.Context) ([]*domain.RoutePoint, error)

	// InsertPoint stores a new point and fills in its ID.
	InsertPoint(ctx context.Context, p *domain.RoutePoint) error

	// UpdatePoint applies a partial update to one point.
	UpdatePoint(ctx context.Context, id int64, u RoutePointUpdate) error

	// ReplaceAll loads a new route in one transaction. When truncate is true
	// the existing route is cleared first. Returns the number of rows loaded.
	ReplaceAll(ctx context.Context, points []*domain.RoutePoint, truncate bool) (int, error)
}
