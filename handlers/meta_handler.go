package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"habitTrackerAPI/internal/action"
	"habitTrackerAPI/internal/record"
)

const (
	serviceName     = "habit-tracker"
	serviceVersion  = "1.0.0"
	protocolName    = "ywaip"
	protocolVersion = "1.0"
	healthService   = "early-wakeup-habit"
)

type ServiceDescriptor struct {
	Service         string   `json:"service"`
	Version         string   `json:"version"`
	Protocol        string   `json:"protocol"`
	ProtocolVersion string   `json:"protocolVersion"`
	Description     string   `json:"description"`
	Actions         []string `json:"actions"`
	Capabilities    []string `json:"capabilities"`
	Scopes          []string `json:"scopes"`
}

type MetaHandler struct {
	store record.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewMetaHandler(store record.Store, log *zap.Logger) *MetaHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &MetaHandler{store: store, log: log, now: time.Now}
}

func (h *MetaHandler) Meta(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, ServiceDescriptor{
		Service:         serviceName,
		Version:         serviceVersion,
		Protocol:        protocolName,
		ProtocolVersion: protocolVersion,
		Description:     "Track daily habits like waking up early. Supports check-ins, streaks, and statistics.",
		Actions:         action.Names(),
		Capabilities: []string{
			"habit-checkin",
			"habit-query",
			"habit-stats",
			"streak-tracking",
			"monthly-statistics",
		},
		Scopes: []string{action.ScopeRead, action.ScopeWrite, action.ScopeDelete},
	})
}

type healthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Time    string `json:"time"`
	Error   string `json:"error,omitempty"`
}

func (h *MetaHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{OK: true, Service: healthService, Time: h.now().UTC().Format(time.RFC3339)}

	if err := h.store.Ping(ctx); err != nil {
		h.log.Error("health check failed", zap.Error(err))
		resp.OK = false
		resp.Error = "database connection failed"
		respondWithJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
