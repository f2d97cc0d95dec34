package handlers_test

import (
	"ItemsAPI/internal/config"
	"ItemsAPI/internal/handlers"
	"ItemsAPI/internal/repo"
	"ItemsAPI/internal/service"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestRouter поднимает роутер поверх настоящего SQLite-файла во временной директории
func newTestRouter(t *testing.T, cfg *config.Config) (http.Handler, *repo.Store) {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	store, err := repo.Open(filepath.Join(t.TempDir(), "items.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.EnsureSchema(context.Background()))

	logger := zap.NewNop().Sugar()
	itemSvc := service.NewItemService(store, repo.NewItemRepository(), logger, cfg.MaxListLimit)
	h := handlers.NewHandler(itemSvc, logger, cfg)
	return h.Router, store
}

// do выполняет запрос и возвращает код и тело ответа
func do(t *testing.T, router http.Handler, method, target, body string) (int, string) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr.Code, rr.Body.String()
}
