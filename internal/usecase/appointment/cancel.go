package appointment

import (
	"context"
	"log"

	"github.com/TrueFadeServices/truefade-api/internal/audit"
	domain "github.com/TrueFadeServices/truefade-api/internal/domain/appointment"
	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/models"
	"github.com/TrueFadeServices/truefade-api/internal/timezone"
)

type CancelResult struct {
	Appointment  *models.Appointment
	CutsRestored bool
}

type CancelAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier

	tz string
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
	tz string,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		tz:       tz,
	}
}

// ExecuteForCustomer cancela um booking do próprio cliente e devolve o
// corte se ele já tinha sido debitado.
func (uc *CancelAppointment) ExecuteForCustomer(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*CancelResult, error) {

	ap, err := uc.repo.GetAppointmentForUser(ctx, appointmentID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	res, err := uc.cancel(ctx, ap, &userID)
	if err != nil {
		return nil, err
	}

	msg := "Booking cancelled: " + ap.ServiceName + " at " + ap.StartTime.Format("Jan 2 15:04")
	if err := uc.notifier.Notify(ctx, ap.BarberID, "booking_cancelled", msg, &ap.ID); err != nil {
		log.Println("notify error:", err)
	}

	return res, nil
}

func (uc *CancelAppointment) ExecuteForBarber(
	ctx context.Context,
	barberID uint,
	appointmentID uint,
) (*CancelResult, error) {

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	return uc.cancel(ctx, ap, &barberID)
}

func (uc *CancelAppointment) cancel(
	ctx context.Context,
	ap *models.Appointment,
	actorID *uint,
) (*CancelResult, error) {

	now := timezone.NowIn(uc.tz)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	restored, err := uc.repo.CancelWithCredit(ctx, ap)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"cuts_restored": restored},
	})

	return &CancelResult{Appointment: ap, CutsRestored: restored}, nil
}
