package repo

import (
	"ItemsAPI/internal/model"

	"gorm.io/gorm"
)

// ItemRepository определяет контракт доступа к Item для слоя сервиса.
// Все методы работают на соединении, выданном Store.WithConn.
// Если строки с указанным id нет, возвращается gorm.ErrRecordNotFound.
type ItemRepository interface {
	// Create вставляет строку; id назначает БД и записывает обратно в it.
	Create(conn *gorm.DB, it *model.Item) error

	// List возвращает не более limit строк после пропуска первых skip, по возрастанию id.
	List(conn *gorm.DB, skip, limit int) ([]model.Item, error)

	// GetByID ищет строку по точному совпадению id.
	GetByID(conn *gorm.DB, id int64) (*model.Item, error)

	// Update перезаписывает name и description целиком и возвращает обновлённую строку.
	Update(conn *gorm.DB, id int64, name string, description *string) (*model.Item, error)

	// Delete удаляет строку и возвращает её состояние до удаления.
	Delete(conn *gorm.DB, id int64) (*model.Item, error)
}

type itemRepo struct{}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository() ItemRepository {
	return &itemRepo{}
}

func (r *itemRepo) Create(conn *gorm.DB, it *model.Item) error {
	return conn.Create(it).Error
}

func (r *itemRepo) List(conn *gorm.DB, skip, limit int) ([]model.Item, error) {
	var items []model.Item
	err := conn.Order("id ASC").Offset(skip).Limit(limit).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) GetByID(conn *gorm.DB, id int64) (*model.Item, error) {
	var it model.Item
	if err := conn.Where("id = ?", id).First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) Update(conn *gorm.DB, id int64, name string, description *string) (*model.Item, error) {
	it, err := r.GetByID(conn, id)
	if err != nil {
		return nil, err
	}
	// map, чтобы description=nil тоже записался (struct-апдейт пропускает нулевые поля)
	tx := conn.Model(&model.Item{}).Where("id = ?", id).Updates(map[string]any{
		"name":        name,
		"description": description,
	})
	if tx.Error != nil {
		return nil, tx.Error
	}
	// строку успели удалить между выборкой и апдейтом
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	it.Name = name
	it.Description = description
	return it, nil
}

func (r *itemRepo) Delete(conn *gorm.DB, id int64) (*model.Item, error) {
	it, err := r.GetByID(conn, id)
	if err != nil {
		return nil, err
	}
	tx := conn.Where("id = ?", id).Delete(&model.Item{})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return it, nil
}
