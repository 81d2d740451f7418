package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aguaruta-service/internal/domain"
	"aguaruta-service/internal/ports"
)

// DefaultCamion receives new points when the active route has no located
// point to inherit from.
const DefaultCamion = "A1"

type AssignPointRequest struct {
	Nombre   string
	Litros   float64
	Telefono *string
	Location domain.Coordinates
	// Dia, when set, overrides the day inherited from the nearest neighbor.
	Dia *string
}

// Nearest existing point used for the assignment, for caller diagnostics.
type AssignmentReference struct {
	PointID    int64
	DistanceKm float64
}

type AssignResult struct {
	Point     *domain.RoutePoint
	Camion    string
	Dia       *string
	Reference *AssignmentReference
}

// AssignNearestPoint inserts a new route point, inheriting camion and dia
// from the geographically nearest located point on the active route.
//
// Selection is greedy over Haversine distance with a deterministic
// tie-breaker on point id. It does not rebalance the route; a point always
// lands on its nearest neighbor's truck even if that truck is heavily loaded.
func AssignNearestPoint(
	ctx context.Context,
	req AssignPointRequest,
	repo ports.RouteRepository,
) (*AssignResult, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, errors.New("assign point: nombre is required")
	}
	if req.Litros <= 0 {
		return nil, fmt.Errorf("assign point: litros must be positive, got %v", req.Litros)
	}
	if !req.Location.Valid() {
		return nil, fmt.Errorf("assign point: coordinates out of range (%v, %v)", req.Location.Lat, req.Location.Lon)
	}

	points, err := repo.ListPoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("assign point: list route points: %w", err)
	}

	var (
		nearest *domain.RoutePoint
		bestKm  float64
	)
	for _, p := range points {
		if p.Camion == nil {
			continue
		}
		coords, ok := p.Coordinates()
		if !ok {
			continue
		}

		km := req.Location.DistanceKm(coords)
		// Tie-breaker ensures deterministic selection when distances are equal.
		if nearest == nil || km < bestKm || (km == bestKm && p.ID < nearest.ID) {
			nearest = p
			bestKm = km
		}
	}

	camion := DefaultCamion
	dia := req.Dia
	var ref *AssignmentReference

	if nearest != nil {
		camion = strings.ToUpper(strings.TrimSpace(*nearest.Camion))
		if dia == nil {
			dia = nearest.Dia
		}
		ref = &AssignmentReference{PointID: nearest.ID, DistanceKm: bestKm}
	}

	point := &domain.RoutePoint{
		Camion:   &camion,
		Nombre:   nombre,
		Dia:      dia,
		Litros:   &req.Litros,
		Telefono: req.Telefono,
		Latitud:  &req.Location.Lat,
		Longitud: &req.Location.Lon,
	}
	if err := repo.InsertPoint(ctx, point); err != nil {
		return nil, fmt.Errorf("assign point: insert: %w", err)
	}

	return &AssignResult{
		Point:     point,
		Camion:    camion,
		Dia:       dia,
		Reference: ref,
	}, nil
}
