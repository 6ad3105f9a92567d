// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"encoding/json"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/exercisevm/exercisevm"
)

const (
	HealthPath  = "/health"
	MetricsPath = "/metrics"
)

// HealthReply is the body served on [HealthPath].
type HealthReply struct {
	Healthy bool        `json:"healthy"`
	Details interface{} `json:"details,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// NewRouter mounts the JSON-RPC service, health and metrics of [host] behind
// CORS and gzip handling.
func NewRouter(
	host *exercisevm.Host,
	logger log.Logger,
	gatherer prometheus.Gatherer,
	allowedOrigins []string,
) (http.Handler, error) {
	rpcHandler, err := NewHandler(host, logger)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Handle(Endpoint, rpcHandler).Methods(http.MethodPost)
	router.Handle(MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.HandleFunc(HealthPath, func(w http.ResponseWriter, r *http.Request) {
		reply := HealthReply{Healthy: true}
		details, err := host.HealthCheck(r.Context())
		if err != nil {
			reply = HealthReply{Error: err.Error()}
		}
		reply.Details = details

		w.Header().Set("Content-Type", "application/json")
		if !reply.Healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		if err := json.NewEncoder(w).Encode(reply); err != nil {
			logger.Debug("couldn't write health reply", "error", err)
		}
	}).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
	}).Handler(router)
	return gziphandler.GzipHandler(corsHandler), nil
}
