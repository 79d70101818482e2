package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	OrderNumber         string          `json:"orderNumber" gorm:"unique;not null"`
	CustomerName        string          `json:"customerName" gorm:"not null"`
	CustomerPhone       string          `json:"customerPhone"`
	CustomerEmail       string          `json:"customerEmail"`
	DeliveryAddress     string          `json:"deliveryAddress"`
	Notes               string          `json:"notes" gorm:"type:text"`
	OrderType           string          `json:"orderType" gorm:"not null"`     // in-store, pickup, delivery
	PaymentMethod       string          `json:"paymentMethod" gorm:"not null"` // cash, credit, credit-card
	PaymentStatus       string          `json:"paymentStatus" gorm:"default:'pending'"`
	Status              string          `json:"status" gorm:"default:'pending'"`
	Subtotal            decimal.Decimal `json:"subtotal" gorm:"type:numeric(10,2);not null"`
	TaxPercentage       decimal.Decimal `json:"taxPercentage" gorm:"type:numeric(5,2);not null"`
	Tax                 decimal.Decimal `json:"tax" gorm:"type:numeric(10,2);not null"`
	DeliveryFee         decimal.Decimal `json:"deliveryFee" gorm:"type:numeric(10,2);not null"`
	ServiceCharge       decimal.Decimal `json:"serviceCharge" gorm:"type:numeric(10,2);not null"`
	Total               decimal.Decimal `json:"total" gorm:"type:numeric(10,2);not null"`
	EstimatedDeliveryAt *time.Time      `json:"estimatedDeliveryAt"`
	Items               []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	CreatedBy           *uint           `json:"createdBy"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt  `json:"-" gorm:"index"`
}

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderReady          OrderStatus = "ready"
	OrderOutForDelivery OrderStatus = "out-for-delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady,
		OrderOutForDelivery, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransitionTo reports whether an admin may move an order of the given type
// from s to next. Orders advance one step at a time; out-for-delivery exists only
// for delivery orders, other orders go from ready straight to delivered.
func (s OrderStatus) CanTransitionTo(next OrderStatus, orderType OrderType) bool {
	if s.IsTerminal() || !next.Valid() {
		return false
	}
	if next == OrderCancelled {
		return true
	}

	switch s {
	case OrderPending:
		return next == OrderConfirmed
	case OrderConfirmed:
		return next == OrderPreparing
	case OrderPreparing:
		return next == OrderReady
	case OrderReady:
		if orderType == OrderTypeDelivery {
			return next == OrderOutForDelivery
		}
		return next == OrderDelivered
	case OrderOutForDelivery:
		return next == OrderDelivered
	}
	return false
}

type OrderType string

const (
	OrderTypeInStore  OrderType = "in-store"
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeInStore || t == OrderTypePickup || t == OrderTypeDelivery
}

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCredit     PaymentMethod = "credit"
	PaymentCreditCard PaymentMethod = "credit-card"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCredit || m == PaymentCreditCard
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) Valid() bool {
	return p == PaymentPending || p == PaymentPaid || p == PaymentFailed || p == PaymentRefunded
}

// OrderStatusChange records one admin-triggered status transition.
type OrderStatusChange struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"orderId" gorm:"not null;index"`
	FromStatus string    `json:"fromStatus" gorm:"not null"`
	ToStatus   string    `json:"toStatus" gorm:"not null"`
	ChangedBy  *uint     `json:"changedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}
