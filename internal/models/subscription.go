package models

import "time"

type Subscription struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PlanName      string `gorm:"size:100" json:"plan_name"`
	StripePriceID string `gorm:"size:100" json:"stripe_price_id"`

	StripeSubscriptionID string  `gorm:"size:100;index" json:"-"`
	StripeScheduleID     *string `gorm:"size:100" json:"-"`

	// active | trialing | past_due | canceled | incomplete | unpaid
	Status string `gorm:"size:20;default:'incomplete'" json:"status"`

	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`

	CutsIncluded int `gorm:"default:0" json:"cuts_included"`
	CutsUsed     int `gorm:"default:0" json:"cuts_used"`

	CancelAtPeriodEnd bool `gorm:"default:false" json:"cancel_at_period_end"`

	// Pending downgrade, applied at period end. At most one at a time.
	ScheduledPlanName      *string    `gorm:"size:100" json:"scheduled_plan_name"`
	ScheduledPriceID       *string    `gorm:"size:100" json:"scheduled_price_id"`
	ScheduledEffectiveDate *time.Time `json:"scheduled_effective_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
