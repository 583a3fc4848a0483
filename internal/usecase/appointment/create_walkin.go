package appointment

import (
	"context"
	"time"

	"github.com/TrueFadeServices/truefade-api/internal/audit"
	domain "github.com/TrueFadeServices/truefade-api/internal/domain/appointment"
	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/models"
	"github.com/TrueFadeServices/truefade-api/internal/timezone"
)

type CreateWalkInInput struct {
	BarberID uint

	CustomerName  string
	CustomerPhone string

	ServiceID uint

	Date  string
	Time  string
	Notes string
}

// CreateWalkIn cria um atendimento sem conta de cliente. Nunca passa
// pela elegibilidade: walk-in não consome corte de assinatura.
type CreateWalkIn struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	tz string
}

func NewCreateWalkIn(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CreateWalkIn {
	return &CreateWalkIn{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

func (uc *CreateWalkIn) Execute(
	ctx context.Context,
	in CreateWalkInInput,
) (*models.Appointment, error) {

	if in.CustomerName == "" {
		return nil, httperr.ErrBusiness("customer_name_required")
	}

	start, err := timezone.ParseDateTime(uc.tz, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	svc, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	if err := uc.repo.AssertNoTimeConflict(ctx, in.BarberID, start, end, 0); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		BarberID:           in.BarberID,
		Type:               string(domain.TypeWalkIn),
		CustomerName:       in.CustomerName,
		CustomerPhone:      in.CustomerPhone,
		ServiceID:          svc.ID,
		ServiceName:        svc.Name,
		ServiceDurationMin: svc.DurationMin,
		ServicePrice:       svc.Price,
		StartTime:          start,
		EndTime:            end,
		Status:             string(domain.InitialStatus()),
		Notes:              in.Notes,
	}

	if err := uc.repo.CreateWalkIn(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.BarberID,
		Action:   "walkin_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
