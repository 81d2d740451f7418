package tabular

import (
	"strings"
	"testing"
	"time"

	"aguaruta-service/internal/domain"
)

func TestParseRoutePoints(t *testing.T) {
	input := strings.Join([]string{
		"CAMION,JEFE_HOGAR,DIA_ASIGNADO,LITROS_DE_ENTREGA,PHONE,LAT,LNG",
		"a1,MARIA PEREZ,martes,\"100,5\",+56911111111,\"-33,451\",\"-70,661\"",
		"A2,JUAN SOTO,JUEVES,200,,,",
	}, "\n")

	points, err := ParseRoutePoints(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}

	p := points[0]
	if p.Camion == nil || *p.Camion != "A1" {
		t.Errorf("camion = %v, want A1 upper-cased", p.Camion)
	}
	if p.Nombre != "MARIA PEREZ" {
		t.Errorf("nombre = %q", p.Nombre)
	}
	if p.Dia == nil || *p.Dia != "MARTES" {
		t.Errorf("dia = %v, want MARTES", p.Dia)
	}
	if p.Litros == nil || *p.Litros != 100.5 {
		t.Errorf("litros = %v, want 100.5 from comma decimal", p.Litros)
	}
	if p.Latitud == nil || *p.Latitud != -33.451 {
		t.Errorf("latitud = %v, want -33.451", p.Latitud)
	}

	// Blank cells become nils, not zero values.
	q := points[1]
	if q.Telefono != nil || q.Latitud != nil || q.Longitud != nil {
		t.Errorf("blank cells should be nil: %+v", q)
	}
}

func TestParseRoutePointsErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"no nombre column", "camion,litros\nA1,100"},
		{"no data rows", "camion,nombre"},
		{"blank nombre", "camion,nombre\nA1,"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseRoutePoints(strings.NewReader(tc.input)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestWriteDeliveriesCSV(t *testing.T) {
	motivo := "sin moradores"
	litros := 120.0
	fecha, _ := time.Parse(domain.DateLayout, "2026-08-20")

	d := &domain.Delivery{
		ID:       7,
		Fecha:    fecha,
		Camion:   "A1",
		Nombre:   "MARIA PEREZ",
		Litros:   &litros,
		Estado:   domain.StatusAusente,
		Motivo:   &motivo,
		CreadoEn: time.Date(2026, 8, 20, 18, 30, 0, 0, time.UTC),
	}

	var sb strings.Builder
	if err := WriteDeliveriesCSV(&sb, []*domain.Delivery{d}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 record, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,fecha,camion") {
		t.Errorf("header = %q", lines[0])
	}

	want := "7,2026-08-20,A1,MARIA PEREZ,120,2,NO ENTREGADA: AUSENTE,sin moradores,,,,,2026-08-20T18:30:00Z"
	if lines[1] != want {
		t.Errorf("record = %q, want %q", lines[1], want)
	}
}
