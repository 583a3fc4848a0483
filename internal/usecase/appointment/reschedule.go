package appointment

import (
	"context"
	"log"
	"time"

	"github.com/TrueFadeServices/truefade-api/internal/audit"
	domain "github.com/TrueFadeServices/truefade-api/internal/domain/appointment"
	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/models"
	"github.com/TrueFadeServices/truefade-api/internal/timezone"
)

type RescheduleInput struct {
	UserID        uint
	AppointmentID uint

	ServiceID uint
	Date      string
	Time      string
}

// Reschedule sobrescreve data/hora/serviço no mesmo registro. Nenhum
// efeito no ledger: continua valendo um corte na conclusão.
type Reschedule struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier

	tz         string
	minAdvance int
}

func NewReschedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
	tz string,
	minAdvanceMinutes int,
) *Reschedule {
	return &Reschedule{
		repo:       repo,
		audit:      audit,
		notifier:   notifier,
		tz:         tz,
		minAdvance: minAdvanceMinutes,
	}
}

func (uc *Reschedule) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForUser(ctx, in.AppointmentID, in.UserID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	start, err := timezone.ParseDateTime(uc.tz, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := uc.minAdvance
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(uc.tz)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	serviceID := in.ServiceID
	if serviceID == 0 {
		serviceID = ap.ServiceID
	}

	svc, err := uc.repo.GetActiveService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)
	if err := uc.repo.AssertNoTimeConflict(ctx, ap.BarberID, start, end, ap.ID); err != nil {
		return nil, err
	}

	if err := domain.Reschedule(ap, svc, start); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	msg := "Booking moved: " + svc.Name + " now at " + start.Format("Jan 2 15:04")
	if err := uc.notifier.Notify(ctx, ap.BarberID, "booking_rescheduled", msg, &ap.ID); err != nil {
		log.Println("notify error:", err)
	}

	return ap, nil
}
