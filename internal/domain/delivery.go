package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrDuplicateDelivery is returned when a second record is inserted for the
// same (fecha, camion, nombre) triple. At most one delivery exists per truck
// per recipient per day.
var ErrDuplicateDelivery = errors.New("delivery already recorded for this date, truck and recipient")

// MaxCamionLen matches the camion column width in the entregas table.
const MaxCamionLen = 10

// DateLayout is the wire and storage format for fecha values.
const DateLayout = "2006-01-02"

// Delivery is one row of the entregas table: a single truck's delivery event
// (or attempted delivery) to a named recipient on a given date.
// Optional columns are pointers; nil maps to SQL NULL.
type Delivery struct {
	ID       int64
	Fecha    time.Time // date only; time-of-day is ignored
	Camion   string
	Nombre   string
	Litros   *float64
	Estado   Status
	Motivo   *string
	Telefono *string
	Latitud  *float64
	Longitud *float64
	FotoURL  *string
	Usuario  *string
	CreadoEn time.Time // set by the database on insert
}

// Validate checks the record against the constraints the schema enforces,
// plus range checks the schema cannot express (coordinates, litros, motivo).
func (d *Delivery) Validate() error {
	if d.Fecha.IsZero() {
		return errors.New("validate delivery: fecha is required")
	}

	camion := strings.TrimSpace(d.Camion)
	if camion == "" {
		return errors.New("validate delivery: camion is required")
	}
	if len(camion) > MaxCamionLen {
		return fmt.Errorf("validate delivery: camion %q exceeds %d characters", camion, MaxCamionLen)
	}

	if strings.TrimSpace(d.Nombre) == "" {
		return errors.New("validate delivery: nombre is required")
	}

	if !d.Estado.Valid() {
		return fmt.Errorf("validate delivery: estado %d is outside the known range", d.Estado)
	}
	if d.Estado.RequiresMotivo() && (d.Motivo == nil || strings.TrimSpace(*d.Motivo) == "") {
		return fmt.Errorf("validate delivery: estado %d (%s) requires motivo", d.Estado, d.Estado.Label())
	}

	if d.Litros != nil && *d.Litros < 0 {
		return fmt.Errorf("validate delivery: litros must not be negative, got %v", *d.Litros)
	}

	if d.Latitud != nil && (*d.Latitud < -90 || *d.Latitud > 90) {
		return fmt.Errorf("validate delivery: latitud %v out of range", *d.Latitud)
	}
	if d.Longitud != nil && (*d.Longitud < -180 || *d.Longitud > 180) {
		return fmt.Errorf("validate delivery: longitud %v out of range", *d.Longitud)
	}

	return nil
}

// TruckSummary aggregates delivery outcomes for one truck over a date range.
type TruckSummary struct {
	Camion       string
	Entregadas   int
	NoEntregadas int
	Total        int
	Litros       float64
}
