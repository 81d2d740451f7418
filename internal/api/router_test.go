package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"aguaruta-service/internal/adapters/repositories"

	_ "modernc.org/sqlite"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	conn, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := repositories.InitSqliteSchema(context.Background(), conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	return NewRouter(
		repositories.NewSqliteDeliveryRepository(conn),
		repositories.NewSqliteRouteRepository(conn),
		nil, // no summary cache
		nil, // photo uploads unconfigured
	)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndListDeliveries(t *testing.T) {
	router := newTestRouter(t)

	body := `{"fecha":"2026-08-20","camion":"a1","nombre":"MARIA PEREZ","litros":100,"estado":1,"usuario":"conductor1"}`
	rec := doJSON(t, router, http.MethodPost, "/entregas", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID <= 0 {
		t.Fatalf("created id = %d", created.ID)
	}

	rec = doJSON(t, router, http.MethodGet, "/entregas?desde=2026-08-01&hasta=2026-08-31", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	var listed struct {
		Entregas []struct {
			Camion     string `json:"camion"`
			EstadoDesc string `json:"estado_desc"`
		} `json:"entregas"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed.Entregas) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(listed.Entregas))
	}
	// camion is normalized to upper case on insert.
	if listed.Entregas[0].Camion != "A1" {
		t.Errorf("camion = %q, want A1", listed.Entregas[0].Camion)
	}
	if listed.Entregas[0].EstadoDesc != "ENTREGADA" {
		t.Errorf("estado_desc = %q", listed.Entregas[0].EstadoDesc)
	}
}

func TestCreateDeliveryConflict(t *testing.T) {
	router := newTestRouter(t)

	body := `{"fecha":"2026-08-20","camion":"A1","nombre":"MARIA PEREZ","estado":1}`
	if rec := doJSON(t, router, http.MethodPost, "/entregas", body); rec.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", rec.Code)
	}

	rec := doJSON(t, router, http.MethodPost, "/entregas", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate create status = %d, want 409", rec.Code)
	}
}

func TestCreateDeliveryValidation(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"bad fecha", `{"fecha":"20-08-2026","camion":"A1","nombre":"X","estado":1}`},
		{"missing camion", `{"fecha":"2026-08-20","nombre":"X","estado":1}`},
		{"unknown estado", `{"fecha":"2026-08-20","camion":"A1","nombre":"X","estado":9}`},
		{"no-entrega without motivo", `{"fecha":"2026-08-20","camion":"A1","nombre":"X","estado":2}`},
		{"unknown field", `{"fecha":"2026-08-20","camion":"A1","nombre":"X","estado":1,"bogus":true}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/entregas", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body: %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestNoEntregadasShortcut(t *testing.T) {
	router := newTestRouter(t)

	ok := `{"fecha":"2026-08-20","camion":"A1","nombre":"MARIA PEREZ","estado":1}`
	failed := `{"fecha":"2026-08-20","camion":"A1","nombre":"JUAN SOTO","estado":2,"motivo":"sin moradores"}`
	for _, b := range []string{ok, failed} {
		if rec := doJSON(t, router, http.MethodPost, "/entregas", b); rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d", rec.Code)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/entregas/no-entregadas?desde=2026-08-01&hasta=2026-08-31", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var listed struct {
		Entregas []struct {
			Nombre string `json:"nombre"`
		} `json:"entregas"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed.Entregas) != 1 || listed.Entregas[0].Nombre != "JUAN SOTO" {
		t.Fatalf("expected only JUAN SOTO, got %+v", listed.Entregas)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	router := newTestRouter(t)

	bodies := []string{
		`{"fecha":"2026-08-20","camion":"A1","nombre":"MARIA PEREZ","litros":100,"estado":1}`,
		`{"fecha":"2026-08-20","camion":"A1","nombre":"JUAN SOTO","litros":200,"estado":1}`,
		`{"fecha":"2026-08-21","camion":"A2","nombre":"PEDRO ROJAS","estado":3,"motivo":"camino cortado"}`,
	}
	for _, b := range bodies {
		if rec := doJSON(t, router, http.MethodPost, "/entregas", b); rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d", rec.Code)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/entregas/resumen?desde=2026-08-01&hasta=2026-08-31", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var res struct {
		Camiones []struct {
			Camion     string  `json:"camion"`
			Entregadas int     `json:"entregadas"`
			Litros     float64 `json:"litros"`
		} `json:"camiones"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Camiones) != 2 {
		t.Fatalf("expected 2 trucks, got %d", len(res.Camiones))
	}
	if res.Camiones[0].Camion != "A1" || res.Camiones[0].Entregadas != 2 || res.Camiones[0].Litros != 300 {
		t.Errorf("A1 summary = %+v", res.Camiones[0])
	}
}

func TestRoutePointUpdateAndAutoAssign(t *testing.T) {
	router := newTestRouter(t)

	create := `{"camion":"A5","nombre":"MARIA PEREZ","dia":"JUEVES","litros":200,"latitud":-33.45,"longitud":-70.66}`
	rec := doJSON(t, router, http.MethodPost, "/rutas-activas", create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create point status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var point struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &point); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doJSON(t, router, http.MethodPut, "/rutas-activas/999999", `{"camion":"A2"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("update missing point status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/rutas-activas/1", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty update status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/rutas-activas/1", `{"camion":"A2","litros":250}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}

	auto := `{"nombre":"NUEVO VECINO","litros":150,"latitud":-33.451,"longitud":-70.661}`
	rec = doJSON(t, router, http.MethodPost, "/rutas-activas/auto", auto)
	if rec.Code != http.StatusCreated {
		t.Fatalf("auto assign status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var assigned struct {
		Camion     string `json:"camion"`
		Referencia *struct {
			PointID int64 `json:"id_ref"`
		} `json:"referencia"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &assigned); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Inherits the updated truck of its only neighbor.
	if assigned.Camion != "A2" {
		t.Errorf("camion = %q, want A2", assigned.Camion)
	}
	if assigned.Referencia == nil || assigned.Referencia.PointID != point.ID {
		t.Errorf("referencia = %+v, want point %d", assigned.Referencia, point.ID)
	}
}

func TestImportRouteCSV(t *testing.T) {
	router := newTestRouter(t)

	csvBody := "camion,nombre,dia,litros\nA1,MARIA PEREZ,MARTES,100\nA2,JUAN SOTO,JUEVES,200\n"

	var form strings.Builder
	boundary := "testboundary"
	form.WriteString("--" + boundary + "\r\n")
	form.WriteString("Content-Disposition: form-data; name=\"archivo\"; filename=\"ruta.csv\"\r\n")
	form.WriteString("Content-Type: text/csv\r\n\r\n")
	form.WriteString(csvBody)
	form.WriteString("\r\n--" + boundary + "--\r\n")

	req := httptest.NewRequest(http.MethodPost, "/admin/importar-ruta-activa", strings.NewReader(form.String()))
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("import status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res struct {
		Insertados int `json:"insertados"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Insertados != 2 {
		t.Fatalf("insertados = %d, want 2", res.Insertados)
	}

	rec = doJSON(t, router, http.MethodGet, "/rutas-activas", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "JUAN SOTO") {
		t.Errorf("imported point missing from listing: %s", rec.Body.String())
	}
}

func TestExportCSV(t *testing.T) {
	router := newTestRouter(t)

	body := `{"fecha":"2026-08-20","camion":"A1","nombre":"MARIA PEREZ","litros":100,"estado":1}`
	if rec := doJSON(t, router, http.MethodPost, "/entregas", body); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/entregas/export?desde=2026-08-01&hasta=2026-08-31", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "MARIA PEREZ") {
		t.Errorf("csv missing record: %s", rec.Body.String())
	}
}

func TestStatusCatalogueEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/estados", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var res struct {
		Estados []struct {
			Codigo         int    `json:"codigo"`
			Descripcion    string `json:"descripcion"`
			RequiereMotivo bool   `json:"requiere_motivo"`
		} `json:"estados"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Estados) != 5 {
		t.Fatalf("expected 5 statuses, got %d", len(res.Estados))
	}
	if res.Estados[0].Codigo != 1 || res.Estados[0].RequiereMotivo {
		t.Errorf("first status = %+v", res.Estados[0])
	}
}

func TestPhotoSignUnconfigured(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/cloudinary/sign", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 without cloudinary config", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Errorf("missing X-Request-Id header")
	}
}
