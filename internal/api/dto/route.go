package dto

import "aguaruta-service/internal/domain"

type RoutePointResponse struct {
	ID       int64    `json:"id"`
	Camion   *string  `json:"camion"`
	Nombre   string   `json:"nombre"`
	Dia      *string  `json:"dia"`
	Litros   *float64 `json:"litros"`
	Telefono *string  `json:"telefono"`
	Latitud  *float64 `json:"latitud"`
	Longitud *float64 `json:"longitud"`
}

func NewRoutePointResponse(p *domain.RoutePoint) RoutePointResponse {
	return RoutePointResponse{
		ID:       p.ID,
		Camion:   p.Camion,
		Nombre:   p.Nombre,
		Dia:      p.Dia,
		Litros:   p.Litros,
		Telefono: p.Telefono,
		Latitud:  p.Latitud,
		Longitud: p.Longitud,
	}
}

type ListRoutePointsResponse struct {
	Puntos []RoutePointResponse `json:"puntos"`
}

type CreateRoutePointRequest struct {
	Camion   *string  `json:"camion"`
	Nombre   string   `json:"nombre"`
	Dia      *string  `json:"dia"`
	Litros   *float64 `json:"litros"`
	Telefono *string  `json:"telefono"`
	Latitud  *float64 `json:"latitud"`
	Longitud *float64 `json:"longitud"`
}

// All fields optional; nil leaves the column untouched.
type UpdateRoutePointRequest struct {
	Camion   *string  `json:"camion"`
	Nombre   *string  `json:"nombre"`
	Dia      *string  `json:"dia"`
	Litros   *float64 `json:"litros"`
	Telefono *string  `json:"telefono"`
	Latitud  *float64 `json:"latitud"`
	Longitud *float64 `json:"longitud"`
}

type AutoAssignRequest struct {
	Nombre   string   `json:"nombre"`
	Litros   float64  `json:"litros"`
	Telefono *string  `json:"telefono"`
	Latitud  *float64 `json:"latitud"`
	Longitud *float64 `json:"longitud"`
	Dia      *string  `json:"dia"`
}

type AssignmentReferenceResponse struct {
	PointID    int64   `json:"id_ref"`
	DistanceKm float64 `json:"dist_km"`
}

type AutoAssignResponse struct {
	ID         int64                        `json:"id"`
	Camion     string                       `json:"camion"`
	Dia        *string                      `json:"dia"`
	Referencia *AssignmentReferenceResponse `json:"referencia"`
}

type ImportRouteResponse struct {
	Insertados int `json:"insertados"`
}
