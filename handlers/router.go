package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"habitTrackerAPI/middleware"
)

// RouterDeps is everything the HTTP surface needs.
type RouterDeps struct {
	Invoke      *InvokeHandler
	Records     *RecordsHandler
	Checkin     *CheckinHandler
	Signature   *SignatureHandler
	Meta        *MetaHandler
	RateLimiter *middleware.RateLimiter
	MetricsUser string
	MetricsPass string
	Log         *zap.Logger
}

func NewRouter(deps RouterDeps) *mux.Router {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(MethodNotAllowed)
	r.NotFoundHandler = http.HandlerFunc(NotFound)

	r.Use(middleware.RequestLogger(log))
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware)
	}
	r.Use(middleware.MonitorMiddleware)
	r.Use(middleware.CallerMiddleware)

	r.Handle("/metrics", middleware.BasicAuth(deps.MetricsUser, deps.MetricsPass)(promhttp.Handler())).Methods("GET")
	r.HandleFunc("/health", deps.Meta.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// The action endpoint answers every method so that a wrong one still
	// gets the envelope.
	api.HandleFunc("/v1/invoke", deps.Invoke.Invoke)
	api.HandleFunc("/v1/meta", deps.Meta.Meta).Methods("GET")

	api.HandleFunc("/records", deps.Records.ListRecords).Methods("GET")
	api.HandleFunc("/records", deps.Records.CreateRecord).Methods("POST")
	api.HandleFunc("/records/{date}", deps.Records.GetRecord).Methods("GET")
	api.HandleFunc("/records/{date}", deps.Records.UpdateRecord).Methods("PUT")
	api.HandleFunc("/records/{date}", deps.Records.DeleteRecord).Methods("DELETE")

	api.HandleFunc("/checkin", deps.Checkin.Checkin).Methods("POST")
	api.HandleFunc("/cloudinary/signature", deps.Signature.CreateSignature).Methods("POST")

	return r
}
