package domain

import (
	"errors"
	"strings"
)

// RoutePoint is one row of the ruta_activa table: a standing stop in the
// weekly distribution plan. Deliveries record what actually happened at
// these points.
type RoutePoint struct {
	ID       int64
	Camion   *string
	Nombre   string
	Dia      *string
	Litros   *float64
	Telefono *string
	Latitud  *float64
	Longitud *float64
}

// Coordinates returns the point's position when both components are present.
func (p *RoutePoint) Coordinates() (Coordinates, bool) {
	if p.Latitud == nil || p.Longitud == nil {
		return Coordinates{}, false
	}

	c := Coordinates{Lat: *p.Latitud, Lon: *p.Longitud}
	if !c.Valid() {
		return Coordinates{}, false
	}
	return c, true
}

func (p *RoutePoint) Validate() error {
	if strings.TrimSpace(p.Nombre) == "" {
		return errors.New("validate route point: nombre is required")
	}

	if p.Camion != nil && len(strings.TrimSpace(*p.Camion)) > MaxCamionLen {
		return errors.New("validate route point: camion exceeds column width")
	}

	if p.Litros != nil && *p.Litros < 0 {
		return errors.New("validate route point: litros must not be negative")
	}

	if p.Latitud != nil && (*p.Latitud < -90 || *p.Latitud > 90) {
		return errors.New("validate route point: latitud out of range")
	}
	if p.Longitud != nil && (*p.Longitud < -180 || *p.Longitud > 180) {
		return errors.New("validate route point: longitud out of range")
	}

	return nil
}
