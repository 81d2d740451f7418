package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"aguaruta-service/internal/adapters/tabular"
	"aguaruta-service/internal/api/dto"
	"aguaruta-service/internal/domain"
	"aguaruta-service/internal/ports"
	"aguaruta-service/internal/services"
)

// DeliveryHandler exposes the entregas endpoints: recording deliveries and
// the listings, summaries and exports built on them.
type DeliveryHandler struct {
	Repo ports.DeliveryRepository
	// Optional; nil disables summary caching.
	Cache ports.SummaryCache
}

func (h *DeliveryHandler) filterFromQuery(r *http.Request) (ports.DeliveryFilter, error) {
	desde, hasta, err := parseDateRange(r)
	if err != nil {
		return ports.DeliveryFilter{}, err
	}

	q := r.URL.Query()
	f := ports.DeliveryFilter{
		Desde:  desde,
		Hasta:  hasta,
		Camion: q.Get("camion"),
		Nombre: q.Get("nombre"),
	}

	if raw := strings.TrimSpace(q.Get("estado")); raw != "" {
		code, err := strconv.Atoi(raw)
		if err != nil {
			return ports.DeliveryFilter{}, fmt.Errorf("estado must be an integer code")
		}
		estado := domain.Status(code)
		if !estado.Valid() {
			return ports.DeliveryFilter{}, fmt.Errorf("estado %d is outside the known range", code)
		}
		f.Estado = &estado
	}

	return f, nil
}

func (h *DeliveryHandler) list(w http.ResponseWriter, r *http.Request, notDelivered bool) {
	f, err := h.filterFromQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	f.NotDelivered = notDelivered

	deliveries, err := h.Repo.List(r.Context(), f)
	if err != nil {
		log.Printf("list deliveries failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDeliveriesResponse{
		Entregas: make([]dto.DeliveryResponse, 0, len(deliveries)),
	}
	for _, d := range deliveries {
		res.Entregas = append(res.Entregas, dto.NewDeliveryResponse(d))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// List returns deliveries in a date range with optional camion, nombre and
// estado filters.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// NotDelivered is the shortcut listing for failed delivery attempts.
func (h *DeliveryHandler) NotDelivered(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// Create records one delivery. The (fecha, camion, nombre) triple is unique;
// a second record for the same triple returns 409.
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDeliveryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	fecha, err := parseDate(req.Fecha)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "fecha must be YYYY-MM-DD")
		return
	}

	d := &domain.Delivery{
		Fecha:    fecha,
		Camion:   strings.ToUpper(strings.TrimSpace(req.Camion)),
		Nombre:   strings.TrimSpace(req.Nombre),
		Litros:   req.Litros,
		Estado:   domain.Status(req.Estado),
		Motivo:   req.Motivo,
		Telefono: req.Telefono,
		Latitud:  req.Latitud,
		Longitud: req.Longitud,
		FotoURL:  req.FotoURL,
		Usuario:  req.Usuario,
	}

	if err := d.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repo.Insert(r.Context(), d); err != nil {
		if errors.Is(err, domain.ErrDuplicateDelivery) {
			writeError(w, r, http.StatusConflict, domain.ErrDuplicateDelivery.Error())
			return
		}
		log.Printf("insert delivery failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.Cache != nil {
		// A failed invalidation only delays summary freshness by one TTL.
		if err := h.Cache.Invalidate(r.Context()); err != nil {
			log.Printf("summary cache invalidate failed: %v", err)
		}
	}

	writeJSON(w, r, http.StatusCreated, dto.CreateDeliveryResponse{ID: d.ID, CreadoEn: d.CreadoEn})
}

// Summary returns per-truck outcome counts for a date range.
func (h *DeliveryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	desde, hasta, err := parseDateRange(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	desdeStr := desde.Format(domain.DateLayout)
	hastaStr := hasta.Format(domain.DateLayout)

	if h.Cache != nil {
		cached, hit, err := h.Cache.Get(r.Context(), desde, hasta)
		if err != nil {
			log.Printf("summary cache get failed: %v", err)
		} else if hit {
			writeJSON(w, r, http.StatusOK, dto.NewSummaryResponse(desdeStr, hastaStr, cached))
			return
		}
	}

	deliveries, err := h.Repo.List(r.Context(), ports.DeliveryFilter{Desde: desde, Hasta: hasta})
	if err != nil {
		log.Printf("summary listing failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	summaries := services.Summarize(deliveries)

	if h.Cache != nil {
		if err := h.Cache.Put(r.Context(), desde, hasta, summaries); err != nil {
			log.Printf("summary cache put failed: %v", err)
		}
	}

	writeJSON(w, r, http.StatusOK, dto.NewSummaryResponse(desdeStr, hastaStr, summaries))
}

// Export streams the filtered listing as a CSV download.
func (h *DeliveryHandler) Export(w http.ResponseWriter, r *http.Request) {
	f, err := h.filterFromQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	deliveries, err := h.Repo.List(r.Context(), f)
	if err != nil {
		log.Printf("export listing failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="entregas.csv"`)

	if err := tabular.WriteDeliveriesCSV(w, deliveries); err != nil {
		// Headers are already out; all we can do is log.
		log.Printf("export write failed: %v", err)
	}
}

// Statuses publishes the estado code catalogue.
func (h *DeliveryHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	res := dto.ListStatusesResponse{}
	for _, s := range domain.AllStatuses() {
		res.Estados = append(res.Estados, dto.StatusResponse{
			Codigo:         int(s),
			Descripcion:    s.Label(),
			RequiereMotivo: s.RequiresMotivo(),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
