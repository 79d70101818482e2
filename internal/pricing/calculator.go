// Package pricing derives order totals from a cart subtotal and the restaurant settings.
// Every function here is pure: inputs are never mutated.
package pricing

import (
	"restaurant_pos/internal/models"

	"github.com/shopspring/decimal"
)

const centPlaces = 2

var hundred = decimal.NewFromInt(100)

type Breakdown struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxPercentage decimal.Decimal `json:"taxPercentage"`
	Tax           decimal.Decimal `json:"tax"`
	DeliveryFee   decimal.Decimal `json:"deliveryFee"`
	ServiceCharge decimal.Decimal `json:"serviceCharge"`
	Total         decimal.Decimal `json:"total"`
}

// Subtotal returns Σ(unitPrice × quantity).
func Subtotal(items []models.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// Calculate prices a subtotal for the given order type.
// total = subtotal + tax + deliveryFee + serviceCharge, with tax and service charge rounded to cents.
func Calculate(subtotal decimal.Decimal, settings *models.Settings, orderType models.OrderType) Breakdown {
	if settings == nil {
		settings = models.DefaultSettings()
	}

	tax := percentOf(subtotal, settings.TaxPercentage)
	serviceCharge := percentOf(subtotal, settings.ServiceCharge)

	deliveryFee := decimal.Zero
	if orderType == models.OrderTypeDelivery && settings.EnableDelivery {
		deliveryFee = settings.DeliveryFee
	}

	return Breakdown{
		Subtotal:      subtotal,
		TaxPercentage: settings.TaxPercentage,
		Tax:           tax,
		DeliveryFee:   deliveryFee,
		ServiceCharge: serviceCharge,
		Total:         subtotal.Add(tax).Add(deliveryFee).Add(serviceCharge),
	}
}

// MeetsMinimum reports whether the subtotal reaches the configured minimum order amount.
func (b Breakdown) MeetsMinimum(minimum decimal.Decimal) bool {
	return b.Subtotal.GreaterThanOrEqual(minimum)
}

func percentOf(amount, percentage decimal.Decimal) decimal.Decimal {
	if percentage.IsZero() {
		return decimal.Zero
	}
	return amount.Mul(percentage).Div(hundred).Round(centPlaces)
}
