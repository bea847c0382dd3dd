package server

import (
	"net/http"

	"github.com/recallify/catalog-service/app/catalog"
	"github.com/recallify/catalog-service/app/health"
	"github.com/recallify/catalog-service/app/middleware"
	"go.uber.org/zap"
)

// NewHandler wires the catalog and health endpoints behind the common middleware.
func NewHandler(store catalog.CatalogStore, db health.Pinger, log *zap.Logger) http.Handler {
	catalogHandler := catalog.NewCatalogHandler(store)
	healthHandler := health.NewHealthHandler(db)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /catalog", catalogHandler.HandleCreate)
	mux.HandleFunc("GET /catalog/{id}", catalogHandler.HandleGet)
	mux.HandleFunc("GET /healthz", healthHandler.HandleHealth)

	return middleware.Chain(mux,
		middleware.RequestID(log),
		middleware.AccessLog,
		middleware.Recover,
	)
}
