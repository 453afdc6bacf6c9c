package onebotaway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

// OpsServer serves the health and metrics endpoints.
type OpsServer struct {
	server *http.Server
}

// StartOpsServer starts the ops HTTP server. metricsHandler may be nil when
// metrics are disabled.
func StartOpsServer(port int, engine *Engine, metricsHandler http.Handler) *OpsServer {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handleHealth(engine))
	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ops server error: %v", err)
		}
	}()
	log.Printf("ops server listening on %s", addr)
	return &OpsServer{server: srv}
}

// Shutdown drains the ops server.
func (o *OpsServer) Shutdown(ctx context.Context) {
	if o == nil || o.server == nil {
		return
	}
	if err := o.server.Shutdown(ctx); err != nil {
		log.Printf("ops server shutdown error: %v", err)
	}
}
