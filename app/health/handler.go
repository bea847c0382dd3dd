package health

import (
	"context"
	"net/http"
	"time"

	"github.com/recallify/catalog-service/app/api"
	"github.com/recallify/catalog-service/app/logger"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// HandleHealth reports 503 while the database is unreachable.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logger.FromContext(r.Context()).Warn("health check failed", zap.Error(err))
		api.JSONResponse(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
		})
		return
	}

	api.OKResponse(w, map[string]string{
		"status": "ok",
	})
}
