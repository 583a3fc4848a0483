package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint `json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	// booking | walk_in. Walk-ins never carry a UserID and never touch
	// the entitlement ledger; bookings always carry one.
	Type string `gorm:"size:20;default:'booking'" json:"type"`

	UserID *uint `json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	CustomerName  string `gorm:"size:100" json:"customer_name"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Snapshot of the service at booking time; reschedule overwrites.
	ServiceName        string  `gorm:"size:100" json:"service_name"`
	ServiceDurationMin int     `json:"service_duration_min"`
	ServicePrice       float64 `json:"service_price"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	CutsUsed    int `gorm:"default:0" json:"cuts_used"`
	CreditsUsed int `gorm:"default:0" json:"credits_used"`

	Rating         *int   `json:"rating"`
	ReviewText     string `gorm:"size:1000" json:"review_text"`
	ReviewPhotoURL string `gorm:"size:500" json:"review_photo_url"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	NoShowAt    *time.Time `json:"no_show_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
