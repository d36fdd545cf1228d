package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"airplain-service/internal/usecase"
	"airplain-service/pkg/emitter"
	"airplain-service/pkg/logger"
)

// Handlers exposes the operational HTTP endpoints: flight lookup, CSV
// import/export, travel statistics and a manual refresh trigger.
type Handlers struct {
	lookup   *usecase.FlightLookup
	transfer *usecase.FlightTransfer
	stats    *usecase.StatsService
	events   *emitter.Emitter
	logger   logger.Logger
}

// NewHandlers creates the API handler set
func NewHandlers(
	lookup *usecase.FlightLookup,
	transfer *usecase.FlightTransfer,
	stats *usecase.StatsService,
	events *emitter.Emitter,
	logger logger.Logger,
) *Handlers {
	return &Handlers{
		lookup:   lookup,
		transfer: transfer,
		stats:    stats,
		events:   events,
		logger:   logger,
	}
}

// Register mounts the API routes on the mux
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/flights/lookup", h.lookupFlight)
	mux.HandleFunc("/api/v1/flights/import", h.importFlights)
	mux.HandleFunc("/api/v1/flights/export", h.exportFlights)
	mux.HandleFunc("/api/v1/flights/refresh", h.refreshFlights)
	mux.HandleFunc("/api/v1/stats", h.yearlyStats)
}

type lookupRequest struct {
	Airline      string `json:"airline"`
	FlightNumber string `json:"flightNumber"`
	Date         string `json:"date"`
}

func (h *Handlers) lookupFlight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Airline == "" || req.FlightNumber == "" {
		writeError(w, http.StatusBadRequest, "airline and flightNumber are required")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	flight, err := h.lookup.AddFlight(r.Context(), req.Airline, req.FlightNumber, date)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrFlightExists):
			writeError(w, http.StatusConflict, "flight already exists")
		case errors.Is(err, usecase.ErrFlightNotFound):
			writeError(w, http.StatusNotFound, "flight not found")
		default:
			h.logger.Error("Flight lookup failed", "airline", req.Airline, "flightNumber", req.FlightNumber, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	// A new flight must wake a paused scheduler.
	h.events.Emit(emitter.RefreshRequested)

	writeJSON(w, http.StatusCreated, flight)
}

func (h *Handlers) importFlights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	imported, err := h.transfer.Import(r.Context(), r.Body)
	if err != nil {
		h.logger.Error("Flight import failed", "error", err)
		writeError(w, http.StatusBadRequest, "import failed")
		return
	}

	if imported > 0 {
		h.events.Emit(emitter.RefreshRequested)
	}

	writeJSON(w, http.StatusOK, map[string]int{"imported": imported})
}

func (h *Handlers) exportFlights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="flights.csv"`)
	if err := h.transfer.Export(r.Context(), w); err != nil {
		h.logger.Error("Flight export failed", "error", err)
	}
}

func (h *Handlers) refreshFlights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	h.events.Emit(emitter.RefreshRequested)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh requested"})
}

func (h *Handlers) yearlyStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stats, err := h.stats.YearlyStats(r.Context())
	if err != nil {
		h.logger.Error("Stats computation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
