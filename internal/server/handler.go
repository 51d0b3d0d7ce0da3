package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"farm-tracker/internal/api"
	"farm-tracker/internal/clock"
	"farm-tracker/internal/domain"
	"farm-tracker/internal/errors"
)

const dateLayout = "2006-01-02"

// Handler serves the API routes. It holds no business rules.
type Handler struct {
	API   api.BusinessAPI
	Clock clock.Clock
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (h *Handler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"
	workers, err := h.API.ListWorkers(r.Context(), activeOnly)
	respond(w, r, http.StatusOK, workers, err)
}

func (h *Handler) OnboardWorker(w http.ResponseWriter, r *http.Request) {
	var draft domain.WorkerDraft
	if !decode(w, r, &draft) {
		return
	}
	worker, err := h.API.OnboardWorker(r.Context(), draft)
	respond(w, r, http.StatusCreated, worker, err)
}

func (h *Handler) GetWorker(w http.ResponseWriter, r *http.Request) {
	worker, err := h.API.GetWorker(r.Context(), mux.Vars(r)["id"])
	respond(w, r, http.StatusOK, worker, err)
}

func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	event, err := h.API.ClockIn(r.Context(), mux.Vars(r)["id"])
	respond(w, r, http.StatusOK, event, err)
}

func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	event, err := h.API.ClockOut(r.Context(), mux.Vars(r)["id"])
	respond(w, r, http.StatusOK, event, err)
}

func (h *Handler) ClockStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.API.GetClockStatus(r.Context(), mux.Vars(r)["id"])
	respond(w, r, http.StatusOK, status, err)
}

func (h *Handler) TimeBlocks(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	blocks, err := h.API.GetTimeBlocks(r.Context(), mux.Vars(r)["id"], date)
	respond(w, r, http.StatusOK, blocks, err)
}

func (h *Handler) DayHours(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	summary, err := h.API.GetDaySummary(r.Context(), mux.Vars(r)["id"], date)
	respond(w, r, http.StatusOK, summary, err)
}

func (h *Handler) WeekHours(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, errors.NewInvalidInputError("offset", raw, "must be an integer"))
			return
		}
		offset = n
	}
	summary, err := h.API.GetWeekSummary(r.Context(), mux.Vars(r)["id"], date, offset)
	respond(w, r, http.StatusOK, summary, err)
}

func (h *Handler) FieldOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.API.GetFieldOverview(r.Context(), mux.Vars(r)["id"])
	respond(w, r, http.StatusOK, overview, err)
}

func (h *Handler) ListSoilTests(w http.ResponseWriter, r *http.Request) {
	tests, err := h.API.ListSoilTests(r.Context(), mux.Vars(r)["id"])
	respond(w, r, http.StatusOK, tests, err)
}

func (h *Handler) RecordSoilTest(w http.ResponseWriter, r *http.Request) {
	var draft domain.SoilTestDraft
	if !decode(w, r, &draft) {
		return
	}
	test, err := h.API.RecordSoilTest(r.Context(), draft)
	respond(w, r, http.StatusCreated, test, err)
}

func (h *Handler) SoilReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.API.GetSoilReport(r.Context(), mux.Vars(r)["id"])
	respond(w, r, http.StatusOK, report, err)
}

// dateParam reads ?date=YYYY-MM-DD as a local date, defaulting to today.
func (h *Handler) dateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return h.Clock.Now(), true
	}
	date, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		writeError(w, r, errors.NewInvalidInputError("date", raw, "expected YYYY-MM-DD"))
		return time.Time{}, false
	}
	return date, true
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, r, errors.NewInvalidInputError("body", nil, err.Error()))
		return false
	}
	return true
}

func respond(w http.ResponseWriter, r *http.Request, status int, body interface{}, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, status, body)
}

// StatusCode maps an error to its HTTP status.
func StatusCode(err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeNoOpenBlock:
		return http.StatusConflict
	case errors.ErrorTypeValidation, errors.ErrorTypeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.ShouldLogError(err) {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	}
	writeJSON(w, r, StatusCode(err), errorResponse{
		Error: errors.GetUserMessage(err),
		Code:  errors.GetErrorCode(err),
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to write response")
	}
}
