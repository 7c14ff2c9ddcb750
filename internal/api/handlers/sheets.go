package handlers

import (
	"brevet-times-service/internal/api/dto"
	"brevet-times-service/internal/ports"
	"brevet-times-service/internal/services"
	"net/http"
	"strconv"
	"time"
)

type SheetHandler struct {
	Calc     services.Calculator
	Location *time.Location
	Repo     ports.ControlRepository
}

// Build computes a whole control sheet. With ?submit=true the sheet also
// replaces the stored controls.
func (h *SheetHandler) Build(w http.ResponseWriter, r *http.Request) {
	var req dto.SheetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	submit := false
	if raw := r.URL.Query().Get("submit"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "submit must be a boolean")
			return
		}
		submit = v
	}

	if len(req.Controls) == 0 {
		writeError(w, r, http.StatusBadRequest, "controls are required")
		return
	}

	start, err := services.ParseStartTime(req.StartTime, h.Location)
	if err != nil {
		writeServiceError(w, r, "build sheet", err)
		return
	}

	inputs := make([]services.ControlInput, 0, len(req.Controls))
	for _, c := range req.Controls {
		inputs = append(inputs, services.ControlInput{Km: c.Km, Miles: c.Miles})
	}

	sheet, err := services.BuildControlSheet(r.Context(), h.Calc, services.BrevetSheetRequest{
		BrevetKm:  req.BrevetKm,
		StartTime: start,
		Controls:  inputs,
	})
	if err != nil {
		writeServiceError(w, r, "build sheet", err)
		return
	}

	if submit {
		sheet, err = services.SubmitControls(r.Context(), h.Repo, sheet)
		if err != nil {
			writeServiceError(w, r, "submit sheet", err)
			return
		}
	}

	writeJSON(w, r, http.StatusOK, dto.ListControlsResponse{Controls: toControlRows(sheet)})
}
