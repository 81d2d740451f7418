package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"aguaruta-service/internal/adapters/tabular"
	"aguaruta-service/internal/api/dto"
	"aguaruta-service/internal/domain"
	"aguaruta-service/internal/ports"
	"aguaruta-service/internal/services"

	"github.com/go-chi/chi/v5"
)

// Route CSV uploads are small; this bounds the in-memory part of the parse.
const maxImportMemory = 10 << 20

// RouteHandler exposes the ruta_activa endpoints: the standing distribution
// plan and its maintenance operations.
type RouteHandler struct {
	Repo ports.RouteRepository
}

// List returns the whole active route.
func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	points, err := h.Repo.ListPoints(r.Context())
	if err != nil {
		log.Printf("list route points failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRoutePointsResponse{
		Puntos: make([]dto.RoutePointResponse, 0, len(points)),
	}
	for _, p := range points {
		res.Puntos = append(res.Puntos, dto.NewRoutePointResponse(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Create registers a new route point with an explicit truck and day.
func (h *RouteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRoutePointRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	p := &domain.RoutePoint{
		Camion:   req.Camion,
		Nombre:   strings.TrimSpace(req.Nombre),
		Dia:      req.Dia,
		Litros:   req.Litros,
		Telefono: req.Telefono,
		Latitud:  req.Latitud,
		Longitud: req.Longitud,
	}
	if err := p.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repo.InsertPoint(r.Context(), p); err != nil {
		log.Printf("insert route point failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewRoutePointResponse(p))
}

// Update applies a partial edit to one route point.
func (h *RouteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	var req dto.UpdateRoutePointRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	u := ports.RoutePointUpdate{
		Camion:   req.Camion,
		Nombre:   req.Nombre,
		Dia:      req.Dia,
		Litros:   req.Litros,
		Telefono: req.Telefono,
		Latitud:  req.Latitud,
		Longitud: req.Longitud,
	}
	if u.Empty() {
		writeError(w, r, http.StatusBadRequest, "no fields to update")
		return
	}

	if err := h.Repo.UpdatePoint(r.Context(), id, u); err != nil {
		if errors.Is(err, ports.ErrPointNotFound) {
			writeError(w, r, http.StatusNotFound, "route point not found")
			return
		}
		log.Printf("update route point failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"ok": true, "id": id})
}

// AutoAssign registers a new point, inheriting camion and dia from the
// nearest located neighbor on the route.
func (h *RouteHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	var req dto.AutoAssignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Latitud == nil || req.Longitud == nil {
		writeError(w, r, http.StatusBadRequest, "latitud and longitud are required")
		return
	}

	svcReq := services.AssignPointRequest{
		Nombre:   req.Nombre,
		Litros:   req.Litros,
		Telefono: req.Telefono,
		Location: domain.Coordinates{Lat: *req.Latitud, Lon: *req.Longitud},
		Dia:      req.Dia,
	}

	result, err := services.AssignNearestPoint(r.Context(), svcReq, h.Repo)
	if err != nil {
		// The service validates before touching storage; surface those as 400.
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res := dto.AutoAssignResponse{
		ID:     result.Point.ID,
		Camion: result.Camion,
		Dia:    result.Dia,
	}
	if result.Reference != nil {
		res.Referencia = &dto.AssignmentReferenceResponse{
			PointID:    result.Reference.PointID,
			DistanceKm: result.Reference.DistanceKm,
		}
	}

	writeJSON(w, r, http.StatusCreated, res)
}

// Import loads the active route from an uploaded CSV. With truncate (the
// default) the previous route is replaced wholesale.
func (h *RouteHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportMemory); err != nil {
		writeError(w, r, http.StatusBadRequest, "expected multipart form upload")
		return
	}

	file, _, err := r.FormFile("archivo")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "archivo file field is required")
		return
	}
	defer file.Close()

	truncate := true
	if raw := r.FormValue("truncate"); raw != "" {
		truncate, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "truncate must be a boolean")
			return
		}
	}

	points, err := tabular.ParseRoutePoints(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.Repo.ReplaceAll(r.Context(), points, truncate)
	if err != nil {
		log.Printf("route import failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ImportRouteResponse{Insertados: n})
}
