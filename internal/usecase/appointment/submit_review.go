package appointment

import (
	"context"

	"github.com/TrueFadeServices/truefade-api/internal/audit"
	domain "github.com/TrueFadeServices/truefade-api/internal/domain/appointment"
	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/models"
	"github.com/TrueFadeServices/truefade-api/internal/timezone"
)

type SubmitReviewInput struct {
	UserID        uint
	AppointmentID uint

	Rating int
	Text   string
}

// SubmitReview anexa a avaliação. Um booking ainda scheduled é
// concluído (e debitado) junto; cancelado é sempre recusado.
type SubmitReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	tz string
}

func NewSubmitReview(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *SubmitReview {
	return &SubmitReview{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

func (uc *SubmitReview) Execute(
	ctx context.Context,
	in SubmitReviewInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForUser(ctx, in.AppointmentID, in.UserID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(uc.tz)
	completedNow, err := domain.AttachReview(ap, in.Rating, in.Text, now)
	if err != nil {
		return nil, err
	}

	if completedNow {
		err = uc.repo.CompleteWithDebit(ctx, ap, domain.IsBooking(ap))
	} else {
		err = uc.repo.UpdateAppointment(ctx, ap)
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "review_submitted",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"rating": in.Rating},
	})

	return ap, nil
}

// SetPhoto grava a URL da foto já enviada para o storage.
func (uc *SubmitReview) SetPhoto(
	ctx context.Context,
	userID uint,
	appointmentID uint,
	photoURL string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForUser(ctx, appointmentID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanReview(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	ap.ReviewPhotoURL = photoURL
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	return ap, nil
}
