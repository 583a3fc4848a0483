package appointment

import (
	"time"

	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func IsBooking(ap *models.Appointment) bool {
	return Type(ap.Type) == TypeBooking
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func MarkNoShow(ap *models.Appointment, now time.Time) error {
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	ap.NoShowAt = &now
	return nil
}

// Reschedule troca data/hora/serviço no mesmo registro; nunca cria outro.
func Reschedule(ap *models.Appointment, svc *models.Service, start time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.ServiceID = svc.ID
	ap.ServiceName = svc.Name
	ap.ServiceDurationMin = svc.DurationMin
	ap.ServicePrice = svc.Price
	ap.StartTime = start
	ap.EndTime = start.Add(time.Duration(svc.DurationMin) * time.Minute)
	return nil
}

// AttachReview anexa a avaliação; conclui o agendamento se ainda estiver
// scheduled (o débito correspondente é responsabilidade do chamador).
func AttachReview(ap *models.Appointment, rating int, text string, now time.Time) (completedNow bool, err error) {
	if err := CanReview(Status(ap.Status)); err != nil {
		return false, err
	}

	if rating < 1 || rating > 5 {
		return false, httperr.ErrBusiness("invalid_rating")
	}

	if Status(ap.Status) == StatusScheduled {
		if err := Complete(ap, now); err != nil {
			return false, err
		}
		completedNow = true
	}

	ap.Rating = &rating
	ap.ReviewText = text
	return completedNow, nil
}
