package domain

// Status is the small-integer outcome code stored with every delivery record.
// The schema only fixes the column type; the valid range and meaning of each
// code is defined here.
type Status int

const (
	StatusEntregada    Status = 1 // water delivered to the recipient
	StatusAusente      Status = 2 // not delivered: nobody home
	StatusCaminoMalo   Status = 3 // not delivered: road impassable
	StatusReprogramada Status = 4 // rescheduled to another day
	StatusRechazada    Status = 5 // recipient refused the delivery
)

func (s Status) Valid() bool {
	return s >= StatusEntregada && s <= StatusRechazada
}

// Delivered reports whether the truck actually handed over water.
func (s Status) Delivered() bool { return s == StatusEntregada }

// RequiresMotivo reports whether a record with this status must carry a reason.
// Every non-delivered outcome does.
func (s Status) RequiresMotivo() bool { return s.Valid() && s != StatusEntregada }

func (s Status) Label() string {
	switch s {
	case StatusEntregada:
		return "ENTREGADA"
	case StatusAusente:
		return "NO ENTREGADA: AUSENTE"
	case StatusCaminoMalo:
		return "NO ENTREGADA: CAMINO MALO"
	case StatusReprogramada:
		return "REPROGRAMADA"
	case StatusRechazada:
		return "RECHAZADA"
	default:
		return "DESCONOCIDO"
	}
}

// AllStatuses returns the catalogue in code order.
func AllStatuses() []Status {
	return []Status{
		StatusEntregada,
		StatusAusente,
		StatusCaminoMalo,
		StatusReprogramada,
		StatusRechazada,
	}
}
