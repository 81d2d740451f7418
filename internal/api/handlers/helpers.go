package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"aguaruta-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON strictly decodes a single JSON object into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("body must contain only one JSON object")
	}

	return nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(domain.DateLayout, strings.TrimSpace(value))
}

// parseDateRange reads the required desde/hasta query parameters.
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()

	desde, err := parseDate(q.Get("desde"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("desde must be YYYY-MM-DD")
	}
	hasta, err := parseDate(q.Get("hasta"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("hasta must be YYYY-MM-DD")
	}
	if hasta.Before(desde) {
		return time.Time{}, time.Time{}, fmt.Errorf("hasta must not precede desde")
	}

	return desde, hasta, nil
}
