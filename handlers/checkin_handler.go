package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"habitTrackerAPI/internal/record"
	"habitTrackerAPI/services"
)

type CheckinHandler struct {
	recordService *services.RecordService
}

func NewCheckinHandler(recordService *services.RecordService) *CheckinHandler {
	return &CheckinHandler{recordService: recordService}
}

type checkinResponse struct {
	OK      bool    `json:"ok"`
	Date    string  `json:"date"`
	Checked bool    `json:"checked"`
	Message *string `json:"message,omitempty"`
}

type checkinBatchResponse struct {
	OK bool `json:"ok"`
	services.BatchResult
}

// Checkin takes either one check-in or {"checkins": [...]}.
func (h *CheckinHandler) Checkin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body json.RawMessage
	if err := decodeJSONBody(w, r, &body); err != nil {
		respondWithAppError(w, err)
		return
	}

	var shape struct {
		Checkins json.RawMessage `json:"checkins"`
	}
	if err := unmarshalBody(body, &shape); err != nil {
		respondWithAppError(w, err)
		return
	}

	if trimmed := bytes.TrimSpace(shape.Checkins); len(trimmed) > 0 && trimmed[0] == '[' {
		var req record.CheckinBatchRequest
		if err := unmarshalBody(body, &req); err != nil {
			respondWithAppError(w, err)
			return
		}

		result, err := h.recordService.CheckinBatch(ctx, &req)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, checkinBatchResponse{OK: true, BatchResult: result})
		return
	}

	var req record.UpsertRequest
	if err := unmarshalBody(body, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	if err := h.recordService.Upsert(ctx, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, checkinResponse{OK: true, Date: req.Date, Checked: req.Checked, Message: req.Note})
}
