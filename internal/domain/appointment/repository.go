package appointment

import (
	"context"
	"time"

	"github.com/TrueFadeServices/truefade-api/internal/models"
)

type Repository interface {
	// -------- Service --------
	GetActiveService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	// -------- Appointment (create) --------

	// CreateBookingIfEligible creates a booking inside a transaction that
	// locks the customer's subscription row, so two concurrent bookings
	// against a one-cut balance cannot both pass. Returns the remaining
	// cuts observed under the lock alongside any eligibility error.
	CreateBookingIfEligible(
		ctx context.Context,
		ap *models.Appointment,
	) (int, error)

	CreateWalkIn(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) error

	// -------- Appointment (lookup) --------
	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	GetAppointmentForUser(
		ctx context.Context,
		appointmentID uint,
		userID uint,
	) (*models.Appointment, error)

	// -------- Appointment (state change + ledger) --------

	// CompleteWithDebit persists a completed appointment and, for a
	// booking that completed just now, records the ledger debit in the
	// same transaction. The appointment-level cut ledger is append-only
	// with a uniqueness guard, so a replay never double-debits.
	CompleteWithDebit(
		ctx context.Context,
		ap *models.Appointment,
		debit bool,
	) error

	// CancelWithCredit persists a cancelled appointment and restores the
	// cut iff one had been debited. Reports whether a cut was restored.
	CancelWithCredit(
		ctx context.Context,
		ap *models.Appointment,
	) (bool, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListForBarberDay(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)
}
