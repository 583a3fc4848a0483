package appointment

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/TrueFadeServices/truefade-api/internal/audit"
	domain "github.com/TrueFadeServices/truefade-api/internal/domain/appointment"
	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/models"
	"github.com/TrueFadeServices/truefade-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID   uint
	BarberID uint

	ServiceID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier

	tz         string
	minAdvance int
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
	tz string,
	minAdvanceMinutes int,
) *CreateBooking {
	return &CreateBooking{
		repo:       repo,
		audit:      audit,
		notifier:   notifier,
		tz:         tz,
		minAdvance: minAdvanceMinutes,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Data / hora no fuso do salão
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(uc.tz, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 2️⃣ Antecedência mínima
	// --------------------------------------------------
	minAdvance := uc.minAdvance
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(uc.tz)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 3️⃣ Serviço
	// --------------------------------------------------
	svc, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	// --------------------------------------------------
	// 4️⃣ Conflito de horário
	// --------------------------------------------------
	if err := uc.repo.AssertNoTimeConflict(ctx, in.BarberID, start, end, 0); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Criação com re-checagem de elegibilidade
	// --------------------------------------------------
	userID := in.UserID
	ap := &models.Appointment{
		BarberID:           in.BarberID,
		Type:               string(domain.TypeBooking),
		UserID:             &userID,
		ServiceID:          svc.ID,
		ServiceName:        svc.Name,
		ServiceDurationMin: svc.DurationMin,
		ServicePrice:       svc.Price,
		StartTime:          start,
		EndTime:            end,
		Status:             string(domain.InitialStatus()),
		Notes:              in.Notes,
	}

	if _, err := uc.repo.CreateBookingIfEligible(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Auditoria + feed do barbeiro
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "booking_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	msg := fmt.Sprintf("New booking: %s at %s", svc.Name, start.Format("Jan 2 15:04"))
	if err := uc.notifier.Notify(ctx, in.BarberID, "booking_created", msg, &ap.ID); err != nil {
		log.Println("notify error:", err)
	}

	return ap, nil
}
