package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"aguaruta-service/internal/domain"
)

var deliveryCSVHeader = []string{
	"id", "fecha", "camion", "nombre", "litros", "estado", "estado_desc",
	"motivo", "telefono", "latitud", "longitud", "foto_url", "usuario", "creado_en",
}

func textCell(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func decimalCell(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// WriteDeliveriesCSV streams delivery records as CSV with a fixed column
// order. Coordinates keep full precision; fecha is ISO-8601.
func WriteDeliveriesCSV(w io.Writer, deliveries []*domain.Delivery) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(deliveryCSVHeader); err != nil {
		return fmt.Errorf("write deliveries csv: header: %w", err)
	}

	for _, d := range deliveries {
		record := []string{
			strconv.FormatInt(d.ID, 10),
			d.Fecha.Format(domain.DateLayout),
			d.Camion,
			d.Nombre,
			decimalCell(d.Litros),
			strconv.Itoa(int(d.Estado)),
			d.Estado.Label(),
			textCell(d.Motivo),
			textCell(d.Telefono),
			decimalCell(d.Latitud),
			decimalCell(d.Longitud),
			textCell(d.FotoURL),
			textCell(d.Usuario),
			d.CreadoEn.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write deliveries csv: record id=%d: %w", d.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write deliveries csv: flush: %w", err)
	}

	return nil
}
