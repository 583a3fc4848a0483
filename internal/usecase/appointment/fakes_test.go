package appointment

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/TrueFadeServices/truefade-api/internal/domain/appointment"
	"github.com/TrueFadeServices/truefade-api/internal/domain/billing"
	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/models"
)

// fakeRepo espelha em memória as mesmas regras do repositório gorm:
// elegibilidade sob "lock", ledger append-only, débito/crédito no
// máximo uma vez por agendamento.
type fakeRepo struct {
	services     map[uint]*models.Service
	appointments map[uint]*models.Appointment
	nextID       uint

	// No máximo uma assinatura (um cliente por teste).
	sub *models.Subscription

	debits  map[uint]bool // appointment id → debitado
	credits map[uint]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     make(map[uint]*models.Service),
		appointments: make(map[uint]*models.Appointment),
		nextID:       1,
		debits:       make(map[uint]bool),
		credits:      make(map[uint]bool),
	}
}

func (f *fakeRepo) addService(svc *models.Service) {
	f.services[svc.ID] = svc
}

func (f *fakeRepo) GetActiveService(_ context.Context, serviceID uint) (*models.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return svc, nil
}

func (f *fakeRepo) CreateBookingIfEligible(_ context.Context, ap *models.Appointment) (int, error) {
	if f.sub == nil {
		return 0, httperr.ErrEligibility("subscription_required", 0)
	}
	if !billing.IsActive(f.sub) {
		return billing.RemainingCuts(f.sub), httperr.ErrEligibility("subscription_inactive", billing.RemainingCuts(f.sub))
	}

	reserved := 0
	for _, other := range f.appointments {
		if other.Type == string(domain.TypeBooking) &&
			other.Status == string(domain.StatusScheduled) &&
			other.CutsUsed == 0 {
			reserved++
		}
	}

	remaining := billing.RemainingCuts(f.sub) - reserved
	if remaining <= 0 {
		return remaining, httperr.ErrEligibility("no_cuts_remaining", remaining)
	}

	ap.ID = f.nextID
	f.nextID++
	f.appointments[ap.ID] = ap
	return remaining, nil
}

func (f *fakeRepo) CreateWalkIn(_ context.Context, ap *models.Appointment) error {
	ap.ID = f.nextID
	f.nextID++
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) AssertNoTimeConflict(_ context.Context, barberID uint, start, end time.Time, excludeID uint) error {
	for _, other := range f.appointments {
		if other.ID == excludeID || other.BarberID != barberID {
			continue
		}
		if other.Status != string(domain.StatusScheduled) {
			continue
		}
		if start.Before(other.EndTime) && other.StartTime.Before(end) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	return nil
}

func (f *fakeRepo) GetAppointmentForBarber(_ context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok || ap.BarberID != barberID {
		return nil, gorm.ErrRecordNotFound
	}
	return ap, nil
}

func (f *fakeRepo) GetAppointmentForUser(_ context.Context, appointmentID, userID uint) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok || ap.UserID == nil || *ap.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return ap, nil
}

func (f *fakeRepo) CompleteWithDebit(_ context.Context, ap *models.Appointment, debit bool) error {
	if debit && ap.UserID != nil && f.sub != nil && !f.debits[ap.ID] {
		f.debits[ap.ID] = true
		f.sub.CutsUsed++
		ap.CutsUsed = 1
	}
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) CancelWithCredit(_ context.Context, ap *models.Appointment) (bool, error) {
	restored := false
	if ap.UserID != nil && f.sub != nil && f.debits[ap.ID] && !f.credits[ap.ID] {
		f.credits[ap.ID] = true
		if f.sub.CutsUsed > 0 {
			f.sub.CutsUsed--
		}
		ap.CutsUsed = 0
		restored = true
	}
	f.appointments[ap.ID] = ap
	return restored, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) ListForBarberDay(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID == barberID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListForUser(_ context.Context, userID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.UserID != nil && *ap.UserID == userID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// fakeNotifier registra as notificações emitidas.
type fakeNotifier struct {
	kinds []string
}

func (f *fakeNotifier) Notify(_ context.Context, _ uint, kind, _ string, _ *uint) error {
	f.kinds = append(f.kinds, kind)
	return nil
}
