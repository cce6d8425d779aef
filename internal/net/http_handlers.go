package net

import (
	"encoding/json"
	nethttp "net/http"

	"github.com/gorilla/mux"

	"legend-of-kiro/internal/net/ws"
	"legend-of-kiro/internal/observability"
	"legend-of-kiro/internal/sim"
	"legend-of-kiro/internal/telemetry"
	"legend-of-kiro/logging"
)

type HTTPHandlerConfig struct {
	ClientDir     string
	Logger        telemetry.Logger
	Observability observability.Config
	WS            ws.HandlerConfig
	// LogStats reports logging router counters for diagnostics.
	LogStats func() logging.RouterStats
}

type diagnosticsPayload struct {
	Status     string               `json:"status"`
	ServerTime int64                `json:"serverTime"`
	TickRate   int                  `json:"tickRate"`
	Sessions   []ws.SessionInfo     `json:"sessions"`
	Metrics    map[string]uint64    `json:"metrics,omitempty"`
	Logging    *logging.RouterStats `json:"logging,omitempty"`
}

func NewHTTPHandler(cfg HTTPHandlerConfig) nethttp.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.Discard()
	}
	if cfg.WS.Logger == nil {
		cfg.WS.Logger = logger
	}
	if cfg.WS.Registry == nil {
		cfg.WS.Registry = ws.NewRegistry()
	}
	if cfg.WS.Clock == nil {
		cfg.WS.Clock = logging.SystemClock{}
	}
	wsHandler := ws.NewHandler(cfg.WS)
	tickRate := cfg.WS.Loop.TickRate
	if tickRate <= 0 {
		tickRate = sim.DefaultTickRate
	}

	router := mux.NewRouter()

	router.HandleFunc("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	}).Methods(nethttp.MethodGet)

	router.HandleFunc("/diagnostics", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		payload := diagnosticsPayload{
			Status:     "ok",
			ServerTime: cfg.WS.Clock.Now().UnixMilli(),
			TickRate:   tickRate,
			Sessions:   wsHandler.Registry().Snapshot(),
			Metrics:    cfg.WS.Metrics.Snapshot(),
		}
		if cfg.LogStats != nil {
			stats := cfg.LogStats()
			payload.Logging = &stats
		}

		data, err := json.Marshal(payload)
		if err != nil {
			logger.Printf("failed to encode diagnostics: %v", err)
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}).Methods(nethttp.MethodGet)

	router.HandleFunc("/ws", wsHandler.Handle).Methods(nethttp.MethodGet)

	cfg.Observability.Mount(router)

	if cfg.ClientDir != "" {
		router.PathPrefix("/").Handler(nethttp.FileServer(nethttp.Dir(cfg.ClientDir)))
	}

	return router
}

func httpError(w nethttp.ResponseWriter, msg string, code int) {
	nethttp.Error(w, msg, code)
}
