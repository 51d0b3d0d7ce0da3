// Package server exposes the business API over JSON HTTP.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"farm-tracker/internal/api"
	"farm-tracker/internal/clock"
)

// NewRouter sets up the gorilla/mux router and defines all API routes.
func NewRouter(businessAPI api.BusinessAPI, clk clock.Clock, logger zerolog.Logger) *mux.Router {
	h := &Handler{API: businessAPI, Clock: clk}

	r := mux.NewRouter()
	r.Use(requestLogger(logger))

	v1 := r.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/workers", h.ListWorkers).Methods(http.MethodGet)
	v1.HandleFunc("/workers", h.OnboardWorker).Methods(http.MethodPost)
	v1.HandleFunc("/workers/{id}", h.GetWorker).Methods(http.MethodGet)
	v1.HandleFunc("/workers/{id}/clock-in", h.ClockIn).Methods(http.MethodPost)
	v1.HandleFunc("/workers/{id}/clock-out", h.ClockOut).Methods(http.MethodPost)
	v1.HandleFunc("/workers/{id}/status", h.ClockStatus).Methods(http.MethodGet)
	v1.HandleFunc("/workers/{id}/blocks", h.TimeBlocks).Methods(http.MethodGet)
	v1.HandleFunc("/workers/{id}/hours/day", h.DayHours).Methods(http.MethodGet)
	v1.HandleFunc("/workers/{id}/hours/week", h.WeekHours).Methods(http.MethodGet)

	v1.HandleFunc("/fields/{id}", h.FieldOverview).Methods(http.MethodGet)
	v1.HandleFunc("/fields/{id}/soil-tests", h.ListSoilTests).Methods(http.MethodGet)
	v1.HandleFunc("/soil-tests", h.RecordSoilTest).Methods(http.MethodPost)
	v1.HandleFunc("/soil-tests/{id}/report", h.SoilReport).Methods(http.MethodGet)

	v1.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return r
}
