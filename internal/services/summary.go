package services

import (
	"sort"

	"aguaruta-service/internal/domain"
)

// Summarize aggregates delivery records into per-truck outcome counts and
// delivered-liters totals. Litros only counts records whose status is
// delivered; a truck that drove out but delivered nothing still shows up
// with its attempt counts.
func Summarize(deliveries []*domain.Delivery) []domain.TruckSummary {
	byCamion := make(map[string]*domain.TruckSummary)

	for _, d := range deliveries {
		s, ok := byCamion[d.Camion]
		if !ok {
			s = &domain.TruckSummary{Camion: d.Camion}
			byCamion[d.Camion] = s
		}

		s.Total++
		if d.Estado.Delivered() {
			s.Entregadas++
			if d.Litros != nil {
				s.Litros += *d.Litros
			}
		} else {
			s.NoEntregadas++
		}
	}

	out := make([]domain.TruckSummary, 0, len(byCamion))
	for _, s := range byCamion {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Camion < out[j].Camion })

	return out
}
