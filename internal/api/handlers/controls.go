package handlers

import (
	"brevet-times-service/internal/api/dto"
	"brevet-times-service/internal/domain"
	"brevet-times-service/internal/ports"
	"brevet-times-service/internal/services"
	"net/http"
)

// ControlHandler exposes the stored control sheet.
type ControlHandler struct {
	Repo ports.ControlRepository
}

func (h *ControlHandler) List(w http.ResponseWriter, r *http.Request) {
	controls, err := services.ListControls(r.Context(), h.Repo)
	if err != nil {
		writeServiceError(w, r, "list controls", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListControlsResponse{Controls: toControlRows(controls)})
}

// Replace stores already computed rows as given.
func (h *ControlHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitControlsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rows := make([]domain.Control, 0, len(req.Controls))
	for _, c := range req.Controls {
		rows = append(rows, domain.Control{
			Index:     c.Index,
			Miles:     c.Miles,
			Km:        c.Km,
			OpenTime:  c.OpenTime,
			CloseTime: c.CloseTime,
		})
	}

	stored, err := services.SubmitControls(r.Context(), h.Repo, rows)
	if err != nil {
		writeServiceError(w, r, "submit controls", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListControlsResponse{Controls: toControlRows(stored)})
}
