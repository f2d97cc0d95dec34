package service

import (
	"ItemsAPI/internal/model"
	"ItemsAPI/internal/repo"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrItemNotFound — строки с запрошенным id нет. Ожидаемый исход, не сбой.
var ErrItemNotFound = errors.New("item not found")

// Значения пагинации по умолчанию.
const (
	DefaultSkip  = 0
	DefaultLimit = 100
)

// Store — то, что сервису нужно от хранилища: соединение на время операции и ping.
// Реализуется *repo.Store.
type Store interface {
	WithConn(ctx context.Context, fn func(conn *gorm.DB) error) error
	Ping(ctx context.Context) error
}

var _ Store = (*repo.Store)(nil)

// ItemService инкапсулирует операции над Item. Каждая операция берёт своё
// соединение у Store и отпускает его до возврата.
type ItemService struct {
	store    Store
	repo     repo.ItemRepository
	logger   *zap.SugaredLogger
	maxLimit int
}

// NewItemService создаёт сервис. maxLimit > 0 ограничивает limit в List, 0 — без ограничения.
func NewItemService(store Store, r repo.ItemRepository, logger *zap.SugaredLogger, maxLimit int) *ItemService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ItemService{store: store, repo: r, logger: logger, maxLimit: maxLimit}
}

// Create сохраняет новую строку и возвращает её вместе с назначенным id.
func (s *ItemService) Create(ctx context.Context, in model.ItemCreate) (model.Item, error) {
	it := model.NewItem(in)
	err := s.store.WithConn(ctx, func(conn *gorm.DB) error {
		return s.repo.Create(conn, &it)
	})
	if err != nil {
		return model.Item{}, fmt.Errorf("create item: %w", err)
	}
	s.logger.Debugw("item created", "id", it.ID)
	return it, nil
}

// List возвращает страницу items по возрастанию id.
func (s *ItemService) List(ctx context.Context, skip, limit int) ([]model.Item, error) {
	if s.maxLimit > 0 && limit > s.maxLimit {
		limit = s.maxLimit
	}
	var items []model.Item
	err := s.store.WithConn(ctx, func(conn *gorm.DB) error {
		var lerr error
		items, lerr = s.repo.List(conn, skip, limit)
		return lerr
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Get возвращает item по id или ErrItemNotFound.
func (s *ItemService) Get(ctx context.Context, id int64) (model.Item, error) {
	var it *model.Item
	err := s.store.WithConn(ctx, func(conn *gorm.DB) error {
		var gerr error
		it, gerr = s.repo.GetByID(conn, id)
		return gerr
	})
	if err != nil {
		return model.Item{}, s.wrap("get item", id, err)
	}
	return *it, nil
}

// Update перезаписывает name и description. Частичных обновлений нет.
func (s *ItemService) Update(ctx context.Context, id int64, in model.ItemCreate) (model.Item, error) {
	fields := model.NewItem(in)
	var it *model.Item
	err := s.store.WithConn(ctx, func(conn *gorm.DB) error {
		var uerr error
		it, uerr = s.repo.Update(conn, id, fields.Name, fields.Description)
		return uerr
	})
	if err != nil {
		return model.Item{}, s.wrap("update item", id, err)
	}
	s.logger.Debugw("item updated", "id", id)
	return *it, nil
}

// Delete удаляет item и возвращает его последнее сохранённое состояние.
func (s *ItemService) Delete(ctx context.Context, id int64) (model.Item, error) {
	var it *model.Item
	err := s.store.WithConn(ctx, func(conn *gorm.DB) error {
		var derr error
		it, derr = s.repo.Delete(conn, id)
		return derr
	})
	if err != nil {
		return model.Item{}, s.wrap("delete item", id, err)
	}
	s.logger.Debugw("item deleted", "id", id)
	return *it, nil
}

// Ping проверяет доступность хранилища.
func (s *ItemService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *ItemService) wrap(op string, id int64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrItemNotFound
	}
	return fmt.Errorf("%s %d: %w", op, id, err)
}
