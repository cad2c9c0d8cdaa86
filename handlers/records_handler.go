package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"habitTrackerAPI/internal/record"
	"habitTrackerAPI/services"
)

type RecordsHandler struct {
	recordService *services.RecordService
}

func NewRecordsHandler(recordService *services.RecordService) *RecordsHandler {
	return &RecordsHandler{recordService: recordService}
}

type okResponse struct {
	OK   bool   `json:"ok"`
	Date string `json:"date"`
}

func (h *RecordsHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := record.RangeQuery{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	records, err := h.recordService.List(ctx, q)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"records": records})
}

func (h *RecordsHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req record.UpsertRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	if err := h.recordService.Upsert(ctx, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, okResponse{OK: true, Date: req.Date})
}

func (h *RecordsHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.recordService.Get(ctx, mux.Vars(r)["date"])
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"record": rec})
}

func (h *RecordsHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	date := mux.Vars(r)["date"]

	var req record.PatchRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	if err := h.recordService.Patch(ctx, date, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, okResponse{OK: true, Date: date})
}

func (h *RecordsHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	date := mux.Vars(r)["date"]
	if err := h.recordService.Delete(ctx, date); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, okResponse{OK: true, Date: date})
}
