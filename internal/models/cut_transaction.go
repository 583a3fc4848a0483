package models

import "time"

const (
	CutTxDebit  = "debit"
	CutTxCredit = "credit"
)

// Append-only ledger entry behind the subscription cuts balance.
// The unique (appointment_id, kind) index is what makes debit and
// credit exactly-once per appointment.
type CutTransaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SubscriptionID uint `gorm:"index" json:"subscription_id"`

	AppointmentID uint   `gorm:"uniqueIndex:idx_cut_tx_appointment_kind" json:"appointment_id"`
	Kind          string `gorm:"size:10;uniqueIndex:idx_cut_tx_appointment_kind" json:"kind"`

	ReferenceID string `gorm:"size:36" json:"reference_id"`

	CreatedAt time.Time `json:"created_at"`
}
