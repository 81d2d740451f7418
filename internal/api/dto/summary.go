package dto

import "aguaruta-service/internal/domain"

type TruckSummaryResponse struct {
	Camion       string  `json:"camion"`
	Entregadas   int     `json:"entregadas"`
	NoEntregadas int     `json:"no_entregadas"`
	Total        int     `json:"total"`
	Litros       float64 `json:"litros"`
}

type SummaryResponse struct {
	Desde    string                 `json:"desde"`
	Hasta    string                 `json:"hasta"`
	Camiones []TruckSummaryResponse `json:"camiones"`
}

func NewSummaryResponse(desde, hasta string, summaries []domain.TruckSummary) SummaryResponse {
	res := SummaryResponse{
		Desde:    desde,
		Hasta:    hasta,
		Camiones: make([]TruckSummaryResponse, 0, len(summaries)),
	}
	for _, s := range summaries {
		res.Camiones = append(res.Camiones, TruckSummaryResponse{
			Camion:       s.Camion,
			Entregadas:   s.Entregadas,
			NoEntregadas: s.NoEntregadas,
			Total:        s.Total,
			Litros:       s.Litros,
		})
	}
	return res
}

type SignPhotoResponse struct {
	CloudName string `json:"cloud_name"`
	APIKey    string `json:"api_key"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	Folder    string `json:"folder"`
	PublicID  string `json:"public_id"`
	PhotoURL  string `json:"photo_url"`
}
