package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/TrueFadeServices/truefade-api/internal/domain/appointment"
	"github.com/TrueFadeServices/truefade-api/internal/domain/billing"
	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetActiveService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", serviceID, true).
		First(&svc).Error; err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return &svc, nil
}

// --------------------------------------------------
// Appointment (create)
// --------------------------------------------------

// CreateBookingIfEligible re-valida a elegibilidade sob SELECT ... FOR
// UPDATE da assinatura. Agendamentos scheduled ainda não debitados
// reservam o corte deles, então duas reservas concorrentes com um único
// corte restante nunca passam as duas.
func (r *AppointmentGormRepository) CreateBookingIfEligible(
	ctx context.Context,
	ap *models.Appointment,
) (int, error) {

	remaining := 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var sub models.Subscription
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", *ap.UserID).
			First(&sub).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return httperr.ErrEligibility("subscription_required", 0)
			}
			return err
		}

		if !billing.IsActive(&sub) {
			return httperr.ErrEligibility("subscription_inactive", billing.RemainingCuts(&sub))
		}

		var reserved int64
		if err := tx.Model(&models.Appointment{}).
			Where(
				"user_id = ? AND type = ? AND status = ?",
				*ap.UserID, string(domain.TypeBooking), string(domain.StatusScheduled),
			).
			Count(&reserved).Error; err != nil {
			return err
		}

		remaining = billing.RemainingCuts(&sub) - int(reserved)
		if remaining <= 0 {
			if remaining < 0 {
				remaining = 0
			}
			return httperr.ErrEligibility("no_cuts_remaining", remaining)
		}

		return tx.Create(ap).Error
	})

	return remaining, err
}

func (r *AppointmentGormRepository) CreateWalkIn(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND status = 'scheduled' AND start_time < ? AND end_time > ?",
			barberID,
			end,
			start,
		)

	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

// --------------------------------------------------
// Appointment (lookup)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForBarber(
	ctx context.Context,
	appointmentID uint,
	barberID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", appointmentID, barberID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForUser(
	ctx context.Context,
	appointmentID uint,
	userID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", appointmentID, userID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

// --------------------------------------------------
// Appointment (state change + ledger)
// --------------------------------------------------

// CompleteWithDebit grava o status e o débito na mesma transação, com a
// assinatura bloqueada FOR UPDATE. O índice único em (appointment_id,
// kind) é o backstop de schema contra débito duplo.
func (r *AppointmentGormRepository) CompleteWithDebit(
	ctx context.Context,
	ap *models.Appointment,
	debit bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if debit && ap.UserID != nil {
			var sub models.Subscription
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("user_id = ?", *ap.UserID).
				First(&sub).Error; err != nil {
				return err
			}

			var existing models.CutTransaction
			err := tx.
				Where("appointment_id = ? AND kind = ?", ap.ID, models.CutTxDebit).
				First(&existing).Error

			if err == gorm.ErrRecordNotFound {
				entry := models.CutTransaction{
					SubscriptionID: sub.ID,
					AppointmentID:  ap.ID,
					Kind:           models.CutTxDebit,
					ReferenceID:    uuid.NewString(),
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}

				sub.CutsUsed++
				if err := tx.Save(&sub).Error; err != nil {
					return err
				}

				ap.CutsUsed = 1
			} else if err != nil {
				return err
			}
		}

		return tx.Save(ap).Error
	})
}

// CancelWithCredit devolve o corte apenas se houve débito; walk-ins e
// reservas nunca debitadas não geram crédito.
func (r *AppointmentGormRepository) CancelWithCredit(
	ctx context.Context,
	ap *models.Appointment,
) (bool, error) {

	restored := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if ap.UserID != nil {
			var sub models.Subscription
			err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("user_id = ?", *ap.UserID).
				First(&sub).Error
			if err != nil && err != gorm.ErrRecordNotFound {
				return err
			}

			if err == nil {
				var debitEntry models.CutTransaction
				debitErr := tx.
					Where("appointment_id = ? AND kind = ?", ap.ID, models.CutTxDebit).
					First(&debitEntry).Error

				var creditEntry models.CutTransaction
				creditErr := tx.
					Where("appointment_id = ? AND kind = ?", ap.ID, models.CutTxCredit).
					First(&creditEntry).Error

				if debitErr == nil && creditErr == gorm.ErrRecordNotFound {
					entry := models.CutTransaction{
						SubscriptionID: sub.ID,
						AppointmentID:  ap.ID,
						Kind:           models.CutTxCredit,
						ReferenceID:    uuid.NewString(),
					}
					if err := tx.Create(&entry).Error; err != nil {
						return err
					}

					if sub.CutsUsed > 0 {
						sub.CutsUsed--
					}
					if err := tx.Save(&sub).Error; err != nil {
						return err
					}

					ap.CutsUsed = 0
					restored = true
				}
			}
		}

		return tx.Save(ap).Error
	})

	return restored, err
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListForBarberDay(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("User").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID, start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
