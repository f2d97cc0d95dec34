package handlers

import (
	"ItemsAPI/internal/service"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	welcomeMessage = "Welcome to FastAPI CRUD API"
	pingTimeout    = 2 * time.Second
)

// RootHandler — служебные маршруты без работы с items.
type RootHandler struct {
	ItemService *service.ItemService
	Logger      *zap.SugaredLogger
}

func NewRootHandler(itemService *service.ItemService, logger *zap.SugaredLogger) *RootHandler {
	return &RootHandler{ItemService: itemService, Logger: logger}
}

// Welcome GET /
func (h *RootHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

// Health GET /healthz — 200, если БД отвечает, иначе 503.
func (h *RootHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.ItemService.Ping(ctx); err != nil {
		h.Logger.Errorw("Health: database ping failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
