package appointment

import (
	"context"

	"github.com/TrueFadeServices/truefade-api/internal/audit"
	domain "github.com/TrueFadeServices/truefade-api/internal/domain/appointment"
	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/models"
	"github.com/TrueFadeServices/truefade-api/internal/timezone"
)

type MarkNoShow struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	tz string
}

func NewMarkNoShow(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *MarkNoShow {
	return &MarkNoShow{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

// Execute marca falta. Diferente do cancelamento, o corte NÃO volta:
// no-show consome a reserva.
func (uc *MarkNoShow) Execute(
	ctx context.Context,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.MarkNoShow(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &barberID,
		Action:   "appointment_no_show",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
