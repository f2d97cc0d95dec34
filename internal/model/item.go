package model

// Item — строка таблицы items.
type Item struct {
	ID          int64   `gorm:"primaryKey;autoIncrement;index"`
	Name        string  `gorm:"not null;index"`
	Description *string // nullable
}

// TableName фиксирует имя таблицы независимо от naming strategy gorm.
func (Item) TableName() string { return "items" }

// ItemCreate — тело запроса на создание и обновление. id в теле не принимается,
// при обновлении он берётся из пути.
type ItemCreate struct {
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// ItemOut — представление Item в ответах API.
type ItemOut struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// NewItem собирает строку для вставки из провалидированного тела запроса.
func NewItem(in ItemCreate) Item {
	it := Item{Description: in.Description}
	if in.Name != nil {
		it.Name = *in.Name
	}
	return it
}

// ToItemOut маппит строку хранилища в ответ API.
func ToItemOut(it Item) ItemOut {
	return ItemOut{ID: it.ID, Name: it.Name, Description: it.Description}
}

// ToItemOuts маппит срез строк; пустой результат сериализуется как [], а не null.
func ToItemOuts(items []Item) []ItemOut {
	out := make([]ItemOut, 0, len(items))
	for _, it := range items {
		out = append(out, ToItemOut(it))
	}
	return out
}
