// Package tabular converts between CSV files and domain records. Field crews
// maintain the distribution route in spreadsheets; this is the bridge.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"aguaruta-service/internal/domain"
)

// Accepted header spellings per column. Spreadsheets from the field arrive
// with inconsistent headers; matching is case-insensitive after trimming.
var routeHeaderAliases = map[string][]string{
	"camion":   {"camion"},
	"nombre":   {"nombre", "jefe_hogar"},
	"dia":      {"dia", "dia_asignado"},
	"litros":   {"litros", "litros_de_entrega"},
	"telefono": {"telefono", "phone"},
	"latitud":  {"latitud", "lat", "latitude"},
	"longitud": {"longitud", "lon", "lng", "longitude"},
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// resolveColumns maps each known field to its column index, or -1.
func resolveColumns(header []string) map[string]int {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[normalizeHeader(h)] = i
	}

	cols := make(map[string]int, len(routeHeaderAliases))
	for field, aliases := range routeHeaderAliases {
		cols[field] = -1
		for _, a := range aliases {
			if i, ok := byName[a]; ok {
				cols[field] = i
				break
			}
		}
	}
	return cols
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func textOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseDecimal accepts both "123.4" and the comma-decimal "123,4" the field
// spreadsheets use. Unparseable cells become nil rather than failing the row.
func parseDecimal(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return nil
	}
	return &f
}

// ParseRoutePoints reads a route CSV into route points. Rows without a
// nombre are rejected; everything else degrades to NULL columns.
func ParseRoutePoints(r io.Reader) ([]*domain.RoutePoint, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("parse route csv: file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("parse route csv: read header: %w", err)
	}

	cols := resolveColumns(header)
	if cols["nombre"] < 0 {
		return nil, fmt.Errorf("parse route csv: missing nombre column (accepted: %s)",
			strings.Join(routeHeaderAliases["nombre"], ", "))
	}

	points := make([]*domain.RoutePoint, 0, 64)
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse route csv: read line %d: %w", line+1, err)
		}
		line++

		nombre := cell(record, cols["nombre"])
		if nombre == "" {
			return nil, fmt.Errorf("parse route csv: line %d: nombre is empty", line)
		}

		points = append(points, &domain.RoutePoint{
			Camion:   textOrNil(strings.ToUpper(cell(record, cols["camion"]))),
			Nombre:   nombre,
			Dia:      textOrNil(strings.ToUpper(cell(record, cols["dia"]))),
			Litros:   parseDecimal(cell(record, cols["litros"])),
			Telefono: textOrNil(cell(record, cols["telefono"])),
			Latitud:  parseDecimal(cell(record, cols["latitud"])),
			Longitud: parseDecimal(cell(record, cols["longitud"])),
		})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("parse route csv: no data rows")
	}

	return points, nil
}
