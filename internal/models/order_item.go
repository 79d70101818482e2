package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a frozen snapshot of a cart line; it does not follow later menu price changes.
type OrderItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	OrderID    uint            `json:"orderId" gorm:"not null;index"`
	MenuItemID uint            `json:"menuItemId" gorm:"not null"`
	Name       string          `json:"name" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unitPrice" gorm:"type:numeric(10,2);not null"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	LineTotal  decimal.Decimal `json:"lineTotal" gorm:"type:numeric(10,2);not null"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func NewOrderItem(item CartItem) OrderItem {
	return OrderItem{
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.UnitPrice,
		Quantity:   item.Quantity,
		LineTotal:  item.LineTotal(),
	}
}
