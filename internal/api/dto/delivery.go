package dto

import (
	"time"

	"aguaruta-service/internal/domain"
)

type DeliveryResponse struct {
	ID         int64     `json:"id"`
	Fecha      string    `json:"fecha"`
	Camion     string    `json:"camion"`
	Nombre     string    `json:"nombre"`
	Litros     *float64  `json:"litros"`
	Estado     int       `json:"estado"`
	EstadoDesc string    `json:"estado_desc"`
	Motivo     *string   `json:"motivo"`
	Telefono   *string   `json:"telefono"`
	Latitud    *float64  `json:"latitud"`
	Longitud   *float64  `json:"longitud"`
	FotoURL    *string   `json:"foto_url"`
	Usuario    *string   `json:"usuario"`
	CreadoEn   time.Time `json:"creado_en"`
}

func NewDeliveryResponse(d *domain.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:         d.ID,
		Fecha:      d.Fecha.Format(domain.DateLayout),
		Camion:     d.Camion,
		Nombre:     d.Nombre,
		Litros:     d.Litros,
		Estado:     int(d.Estado),
		EstadoDesc: d.Estado.Label(),
		Motivo:     d.Motivo,
		Telefono:   d.Telefono,
		Latitud:    d.Latitud,
		Longitud:   d.Longitud,
		FotoURL:    d.FotoURL,
		Usuario:    d.Usuario,
		CreadoEn:   d.CreadoEn,
	}
}

type ListDeliveriesResponse struct {
	Entregas []DeliveryResponse `json:"entregas"`
}

type CreateDeliveryRequest struct {
	Fecha    string   `json:"fecha"`
	Camion   string   `json:"camion"`
	Nombre   string   `json:"nombre"`
	Litros   *float64 `json:"litros"`
	Estado   int      `json:"estado"`
	Motivo   *string  `json:"motivo"`
	Telefono *string  `json:"telefono"`
	Latitud  *float64 `json:"latitud"`
	Longitud *float64 `json:"longitud"`
	FotoURL  *string  `json:"foto_url"`
	Usuario  *string  `json:"usuario"`
}

type CreateDeliveryResponse struct {
	ID       int64     `json:"id"`
	CreadoEn time.Time `json:"creado_en"`
}

type StatusResponse struct {
	Codigo         int    `json:"codigo"`
	Descripcion    string `json:"descripcion"`
	RequiereMotivo bool   `json:"requiere_motivo"`
}

type ListStatusesResponse struct {
	Estados []StatusResponse `json:"estados"`
}
