package v1

import (
	"context"
	"net/http"
	"time"

	"catalog-backend/pkg/logger"
	"catalog-backend/pkg/utils"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type SystemHandler struct {
	db Pinger
}

// NewSystemHandler builds the greeting and health handlers. db may be nil when
// the service runs without a database.
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db}
}

func (h *SystemHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Greeting)
	mux.HandleFunc("GET /health", h.Health)
}

func (h *SystemHandler) Greeting(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Olá dev"})
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "db": "none"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logger.WithContext(r.Context()).Warn().Err(err).Msg("health check failed")
		utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "db": "unreachable"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "db": "connected"})
}
