package appointment

import "github.com/TrueFadeServices/truefade-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

type Type string

const (
	TypeBooking Type = "booking"
	TypeWalkIn  Type = "walk_in"
)

// ===============================
// Validations
// ===============================

// scheduled is the only non-terminal state; completed, cancelled and
// no_show admit no further transitions.

func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReschedule(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanReview permite avaliação em qualquer estado exceto cancelado.
func CanReview(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrBusiness("review_not_allowed")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
