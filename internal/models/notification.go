package models

import "time"

// Barber-facing notification, mirrored into the Redis feed for
// realtime delivery. EventID deduplicates replays from the feed.
type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	EventID  string `gorm:"size:36;uniqueIndex" json:"event_id"`

	Kind    string `gorm:"size:50" json:"kind"`
	Message string `gorm:"size:255" json:"message"`

	AppointmentID *uint `json:"appointment_id"`

	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}
