// Package api implements the Request Facade (C6): it decodes request
// parameters, orchestrates the inventory load and selection pipeline, and
// encodes the response envelope.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"itemrange/internal/selection"
)

// Loader is the C1 collaborator: load a user's owned items capped by
// maxValue. Satisfied by *inventory.Loader in production and a stub in
// tests.
type Loader interface {
	Load(ctx context.Context, userID string, maxValue int64) ([]selection.InventoryItem, error)
}

// Pinger checks that the inventory store is reachable, used by /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

type handler struct {
	loader Loader
	pinger Pinger
	logger *slog.Logger
}

// NewHandler wires the item-range endpoint and a health endpoint into a
// single http.Handler, following the ancestor service's mux-per-handler
// layout. pinger may be nil, in which case /healthz always reports ok.
func NewHandler(loader Loader, pinger Pinger, logger *slog.Logger) http.Handler {
	h := &handler{loader: loader, pinger: pinger, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.HandleFunc("/items/find_items_in_range", h.handleFindItemsInRange)
	return mux
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleFindItemsInRange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	start := time.Now()

	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger := h.logger.With(
		"user_id", q.UserID,
		"min_value", q.MinValue,
		"max_value", q.MaxValue,
		"min_items", q.MinItems,
		"max_items", q.MaxItems,
	)
	logger.Info("processing request")

	items, err := h.loader.Load(r.Context(), q.UserID, q.MaxValue)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to load inventory")
		return
	}
	logger.Info("fetched and prepared inventory items", "total_items", len(items))

	picks, err := selection.Select(r.Context(), items, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("process_request completed", "elapsed_ms", time.Since(start).Milliseconds())

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "picks": picksJSON(picks)})
}

func parseQuery(r *http.Request) (selection.Query, error) {
	params := r.URL.Query()

	userID := params.Get("user_id")
	if userID == "" {
		return selection.Query{}, errors.New("user_id is required")
	}

	minValue, err := parseInt64(params.Get("minValue"))
	if err != nil {
		return selection.Query{}, fieldError("minValue", err)
	}
	maxValue, err := parseInt64(params.Get("maxValue"))
	if err != nil {
		return selection.Query{}, fieldError("maxValue", err)
	}
	minItems, err := parseUint8(params.Get("minItems"))
	if err != nil {
		return selection.Query{}, fieldError("minItems", err)
	}
	maxItems, err := parseUint8(params.Get("maxItems"))
	if err != nil {
		return selection.Query{}, fieldError("maxItems", err)
	}

	q := selection.Query{
		UserID:   userID,
		MinValue: minValue,
		MaxValue: maxValue,
		MinItems: minItems,
		MaxItems: maxItems,
	}
	if err := q.Validate(); err != nil {
		return selection.Query{}, err
	}
	return q, nil
}

func parseInt64(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func parseUint8(raw string) (uint8, error) {
	v, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

func fieldError(field string, err error) error {
	return errors.New(field + ": " + err.Error())
}

func picksJSON(picks selection.Picks) map[string]uint8 {
	out := make(map[string]uint8, len(picks))
	for id, qty := range picks {
		out[strconv.FormatInt(id, 10)] = qty
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
