package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsID is the primary key of the only settings row.
const SettingsID uint = 1

// Settings is the restaurant-wide singleton read by every pricing computation.
type Settings struct {
	ID                 uint            `json:"id" gorm:"primaryKey"`
	TaxPercentage      decimal.Decimal `json:"taxPercentage" gorm:"type:numeric(5,2);not null"`
	DeliveryFee        decimal.Decimal `json:"deliveryFee" gorm:"type:numeric(10,2);not null"`
	ServiceCharge      decimal.Decimal `json:"serviceCharge" gorm:"type:numeric(5,2);not null"` // percentage of subtotal
	MinimumOrderAmount decimal.Decimal `json:"minimumOrderAmount" gorm:"type:numeric(10,2);not null"`
	EnableDelivery     bool            `json:"enableDelivery" gorm:"not null"`
	RestaurantName     string          `json:"restaurantName"`
	RestaurantAddress  string          `json:"restaurantAddress"`
	RestaurantPhone    string          `json:"restaurantPhone"`
	RestaurantEmail    string          `json:"restaurantEmail"`
	Currency           string          `json:"currency"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

func DefaultSettings() *Settings {
	return &Settings{
		ID:                 SettingsID,
		TaxPercentage:      decimal.Zero,
		DeliveryFee:        decimal.Zero,
		ServiceCharge:      decimal.Zero,
		MinimumOrderAmount: decimal.Zero,
		EnableDelivery:     true,
		RestaurantName:     "Restaurant",
		Currency:           "USD",
	}
}

// SettingsPatch is a partial update; nil fields are left untouched.
type SettingsPatch struct {
	TaxPercentage      *decimal.Decimal `json:"taxPercentage"`
	DeliveryFee        *decimal.Decimal `json:"deliveryFee"`
	ServiceCharge      *decimal.Decimal `json:"serviceCharge"`
	MinimumOrderAmount *decimal.Decimal `json:"minimumOrderAmount"`
	EnableDelivery     *bool            `json:"enableDelivery"`
	RestaurantName     *string          `json:"restaurantName"`
	RestaurantAddress  *string          `json:"restaurantAddress"`
	RestaurantPhone    *string          `json:"restaurantPhone"`
	RestaurantEmail    *string          `json:"restaurantEmail"`
	Currency           *string          `json:"currency"`
}

// Apply copies every present field of p onto s.
func (p SettingsPatch) Apply(s *Settings) {
	if p.TaxPercentage != nil {
		s.TaxPercentage = *p.TaxPercentage
	}
	if p.DeliveryFee != nil {
		s.DeliveryFee = *p.DeliveryFee
	}
	if p.ServiceCharge != nil {
		s.ServiceCharge = *p.ServiceCharge
	}
	if p.MinimumOrderAmount != nil {
		s.MinimumOrderAmount = *p.MinimumOrderAmount
	}
	if p.EnableDelivery != nil {
		s.EnableDelivery = *p.EnableDelivery
	}
	if p.RestaurantName != nil {
		s.RestaurantName = *p.RestaurantName
	}
	if p.RestaurantAddress != nil {
		s.RestaurantAddress = *p.RestaurantAddress
	}
	if p.RestaurantPhone != nil {
		s.RestaurantPhone = *p.RestaurantPhone
	}
	if p.RestaurantEmail != nil {
		s.RestaurantEmail = *p.RestaurantEmail
	}
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
}

func (Settings) TableName() string {
	return "settings"
}
