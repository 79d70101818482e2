package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Slug        string         `json:"slug" gorm:"unique;not null"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	SortOrder   int            `json:"sortOrder" gorm:"default:0"`
	IsActive    bool           `json:"isActive"`
	Items       []MenuItem     `json:"items,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

type MenuItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	CategoryID  uint            `json:"categoryId" gorm:"not null;index"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	IsAvailable bool            `json:"isAvailable"`
	ImageURL    string          `json:"imageUrl"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`

	// CategoryHidden is read from a join and set when the item's category is
	// inactive or deleted.
	CategoryHidden bool `json:"-" gorm:"->;-:migration"`
}

// Orderable reports whether customers may add the item to a cart.
func (m *MenuItem) Orderable() bool {
	return m.IsAvailable && !m.CategoryHidden
}
