package repo

import (
	"context"
	"path/filepath"
	"testing"
)

// newTestStore открывает SQLite-файл во временной директории теста (modernc.org/sqlite)
// и создаёт таблицу items.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "items.db")
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("failed to ensure schema: %v", err)
	}
	return s
}
