package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"habitTrackerAPI/internal/action"
	"habitTrackerAPI/internal/apperror"
	"habitTrackerAPI/middleware"
	"habitTrackerAPI/services"
)

type InvokeHandler struct {
	actionService *services.ActionService
	log           *zap.Logger
}

func NewInvokeHandler(actionService *services.ActionService, log *zap.Logger) *InvokeHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &InvokeHandler{actionService: actionService, log: log}
}

// Invoke is the single action endpoint. Every response, failures included,
// uses the {success, result, error} envelope.
func (h *InvokeHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.fail(w, r, "", apperror.MethodNotAllowed(r.Method))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req action.InvokeRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.log.Warn("invalid invoke body", zap.String("requestId", middleware.GetRequestID(ctx)), zap.Error(err))
		h.fail(w, r, "", err)
		return
	}

	name, _ := req.Name()
	label := action.Parse(name).String()

	caller, _ := middleware.GetCaller(ctx)
	resp, err := h.actionService.Invoke(ctx, &req, caller)
	if err != nil {
		h.fail(w, r, label, err)
		return
	}

	outcome := "ok"
	if resp.Error != nil {
		outcome = resp.Error.Code
	}
	middleware.RecordAction(label, outcome)

	respondWithJSON(w, http.StatusOK, resp)
}

func (h *InvokeHandler) fail(w http.ResponseWriter, r *http.Request, label string, err error) {
	code := apperror.CodeOf(err)
	status := apperror.StatusOf(err)

	message := apperror.PublicMessage(err)

	if status >= http.StatusInternalServerError {
		h.log.Error("action failed",
			zap.String("requestId", middleware.GetRequestID(r.Context())),
			zap.String("action", label),
			zap.Error(err))
	}
	if label != "" {
		middleware.RecordAction(label, code)
	}

	respondWithJSON(w, status, action.Fail(code, message))
}
