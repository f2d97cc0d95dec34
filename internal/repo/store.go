package repo

import (
	"ItemsAPI/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Store — единственный handle хранилища. Создаётся один раз при старте процесса,
// закрывается при остановке и выдаёт соединения на время одного запроса.
type Store struct {
	db *gorm.DB
}

// Open открывает БД по DSN. postgres:// и key=value строки уходят в драйвер postgres,
// всё остальное считается путём/URI файла SQLite (драйвер modernc.org/sqlite, без cgo).
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("empty database dsn")
	}
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}
	db, err := gorm.Open(dialectorFor(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore оборачивает уже открытый *gorm.DB.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func dialectorFor(dsn string) gorm.Dialector {
	if isPostgresDSN(dsn) {
		return postgres.Open(dsn)
	}
	return gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
}

func isPostgresDSN(dsn string) bool {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return true
	}
	// libpq key=value формат: "host=... user=... dbname=..."
	return strings.Contains(dsn, "host=")
}

// EnsureSchema создаёт таблицу items, если её ещё нет. Существующая таблица не трогается:
// миграций и эволюции схемы здесь нет.
func (s *Store) EnsureSchema(ctx context.Context) error {
	m := s.db.WithContext(ctx).Migrator()
	if m.HasTable(&model.Item{}) {
		return nil
	}
	if err := m.CreateTable(&model.Item{}); err != nil {
		return fmt.Errorf("create items table: %w", err)
	}
	return nil
}

// WithConn выдаёт fn выделенное соединение из пула и возвращает его обратно на любом
// пути выхода (в т.ч. при ошибке или панике в fn). Если соединение получить не удалось,
// fn не вызывается, ошибка уходит наверх без повторов.
func (s *Store) WithConn(ctx context.Context, fn func(conn *gorm.DB) error) error {
	return s.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		// NewDB: каждая цепочка вызовов в fn начинается с чистого statement,
		// но на том же соединении.
		return fn(tx.Session(&gorm.Session{NewDB: true}))
	})
}

// Ping проверяет доступность БД.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close закрывает пул соединений.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
