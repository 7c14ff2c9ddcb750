package handlers

import (
	"brevet-times-service/internal/api/dto"
	"brevet-times-service/internal/domain"
	"brevet-times-service/internal/services"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Distance used when the km parameter is missing.
const defaultCalcKm = 999

// TimesHandler answers single-control open/close lookups.
type TimesHandler struct {
	Calc     services.Calculator
	Location *time.Location
}

// CalcTimes serves GET /_calc_times?km=&brevet=&start_info=.
func (h *TimesHandler) CalcTimes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	km := float64(defaultCalcKm)
	if raw := strings.TrimSpace(q.Get("km")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "km must be a number")
			return
		}
		km = v
	}

	brevet, err := strconv.Atoi(strings.TrimSpace(q.Get("brevet")))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "brevet must be an integer distance")
		return
	}

	start, err := services.ParseStartTime(q.Get("start_info"), h.Location)
	if err != nil {
		writeServiceError(w, r, "calc times", err)
		return
	}

	res, err := h.Calc.Times(domain.ControlTimeRequest{ControlKm: km, BrevetKm: brevet, StartTime: start})
	if err != nil {
		writeServiceError(w, r, "calc times", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CalcTimesResponse{
		Result: dto.CalcTimesResult{
			Open:  res.OpenTime.Format(time.RFC3339),
			Close: res.CloseTime.Format(time.RFC3339),
		},
	})
}
