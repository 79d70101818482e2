package events

import (
	"time"

	"restaurant_pos/internal/models"

	"github.com/shopspring/decimal"
)

type OrderLine struct {
	MenuItemID uint            `json:"menuItemId"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
}

type OrderCreated struct {
	OrderID             uint            `json:"orderId"`
	OrderNumber         string          `json:"orderNumber"`
	OrderType           string          `json:"orderType"`
	CustomerName        string          `json:"customerName"`
	Total               decimal.Decimal `json:"total"`
	Items               []OrderLine     `json:"items"`
	EstimatedDeliveryAt *time.Time      `json:"estimatedDeliveryAt,omitempty"`
}

type OrderStatusChanged struct {
	OrderID     uint   `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	FromStatus  string `json:"fromStatus"`
	ToStatus    string `json:"toStatus"`
}

func NewOrderCreated(o *models.Order) OrderCreated {
	ev := OrderCreated{
		OrderID:             o.ID,
		OrderNumber:         o.OrderNumber,
		OrderType:           o.OrderType,
		CustomerName:        o.CustomerName,
		Total:               o.Total,
		EstimatedDeliveryAt: o.EstimatedDeliveryAt,
	}
	for _, it := range o.Items {
		ev.Items = append(ev.Items, OrderLine{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
		})
	}
	return ev
}

func NewOrderStatusChanged(o *models.Order, from models.OrderStatus) OrderStatusChanged {
	return OrderStatusChanged{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		FromStatus:  string(from),
		ToStatus:    o.Status,
	}
}
