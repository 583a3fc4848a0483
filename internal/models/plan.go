package models

import "time"

// Synced from the Stripe price catalog; read-only for the app.
type Plan struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StripePriceID string `gorm:"size:100;uniqueIndex;not null" json:"stripe_price_id"`
	Name          string `gorm:"size:100;not null" json:"name"`

	CutsIncluded int    `json:"cuts_included"`
	Interval     string `gorm:"size:10" json:"interval"`

	// Minor currency units.
	PriceAmount int64  `json:"price_amount"`
	Currency    string `gorm:"size:3" json:"currency"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
