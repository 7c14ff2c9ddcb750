package handlers

import (
	"brevet-times-service/internal/api/dto"
	"brevet-times-service/internal/domain"
	"brevet-times-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError reports calculator validation failures to the caller and
// hides everything else behind a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if domain.IsValidation(err) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	zap.L().Error(op+" failed", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

func toControlRows(controls []domain.Control) []dto.ControlRow {
	rows := make([]dto.ControlRow, 0, len(controls))
	for _, c := range controls {
		rows = append(rows, dto.ControlRow{
			Index:     c.Index,
			Miles:     c.Miles,
			Km:        c.Km,
			OpenTime:  c.OpenTime,
			CloseTime: c.CloseTime,
			BrevetID:  c.BrevetID,
		})
	}
	return rows
}
