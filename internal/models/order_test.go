package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo_ForwardPath(t *testing.T) {
	path := []OrderStatus{OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderOutForDelivery, OrderDelivered}
	for i := 0; i < len(path)-1; i++ {
		assert.Truef(t, path[i].CanTransitionTo(path[i+1], OrderTypeDelivery), "%s -> %s", path[i], path[i+1])
	}
}

func TestOrderStatus_CanTransitionTo_NoSkipping(t *testing.T) {
	assert.False(t, OrderPending.CanTransitionTo(OrderPreparing, OrderTypeDelivery))
	assert.False(t, OrderConfirmed.CanTransitionTo(OrderDelivered, OrderTypeDelivery))
	assert.False(t, OrderReady.CanTransitionTo(OrderPending, OrderTypeDelivery))
	assert.False(t, OrderPending.CanTransitionTo(OrderPending, OrderTypeDelivery))
}

func TestOrderStatus_CanTransitionTo_OutForDeliveryOnlyForDelivery(t *testing.T) {
	assert.False(t, OrderReady.CanTransitionTo(OrderOutForDelivery, OrderTypePickup))
	assert.True(t, OrderReady.CanTransitionTo(OrderDelivered, OrderTypePickup))
	assert.True(t, OrderReady.CanTransitionTo(OrderDelivered, OrderTypeInStore))
	assert.False(t, OrderReady.CanTransitionTo(OrderDelivered, OrderTypeDelivery))
}

func TestOrderStatus_CancelFromNonTerminal(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderOutForDelivery} {
		assert.Truef(t, s.CanTransitionTo(OrderCancelled, OrderTypeDelivery), "%s -> cancelled", s)
	}
	assert.False(t, OrderDelivered.CanTransitionTo(OrderCancelled, OrderTypeDelivery))
	assert.False(t, OrderCancelled.CanTransitionTo(OrderCancelled, OrderTypeDelivery))
}

func TestOrderStatus_UnknownTarget(t *testing.T) {
	assert.False(t, OrderPending.CanTransitionTo(OrderStatus("shipped"), OrderTypeDelivery))
}

func TestEnums_Valid(t *testing.T) {
	assert.True(t, OrderTypeDelivery.Valid())
	assert.False(t, OrderType("dine_in").Valid())
	assert.True(t, PaymentCreditCard.Valid())
	assert.False(t, PaymentMethod("bitcoin").Valid())
	assert.True(t, PaymentRefunded.Valid())
}

func TestSettingsPatch_Apply(t *testing.T) {
	s := DefaultSettings()
	tax := decimal.RequireFromString("8.25")
	off := false

	SettingsPatch{TaxPercentage: &tax, EnableDelivery: &off}.Apply(s)

	assert.True(t, s.TaxPercentage.Equal(tax))
	assert.False(t, s.EnableDelivery)
	assert.Equal(t, "Restaurant", s.RestaurantName)
}

func TestNewOrderItem_FreezesLineTotal(t *testing.T) {
	item := NewOrderItem(CartItem{ID: 3, Name: "Pho", UnitPrice: decimal.RequireFromString("12.50"), Quantity: 2})

	assert.Equal(t, uint(3), item.MenuItemID)
	assert.True(t, item.LineTotal.Equal(decimal.RequireFromString("25.00")))
}
