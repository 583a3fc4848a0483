package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TrueFadeServices/truefade-api/internal/domain/billing"
	"github.com/TrueFadeServices/truefade-api/internal/models"
)

type BillingGormRepository struct {
	db *gorm.DB
}

func NewBillingGormRepository(db *gorm.DB) *BillingGormRepository {
	return &BillingGormRepository{db: db}
}

// --------------------------------------------------
// Subscription
// --------------------------------------------------

func (r *BillingGormRepository) GetSubscriptionByUserID(
	ctx context.Context,
	userID uint,
) (*models.Subscription, error) {

	var sub models.Subscription
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *BillingGormRepository) GetSubscriptionByStripeID(
	ctx context.Context,
	stripeSubscriptionID string,
) (*models.Subscription, error) {

	var sub models.Subscription
	if err := r.db.WithContext(ctx).
		Where("stripe_subscription_id = ?", stripeSubscriptionID).
		First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *BillingGormRepository) CreateSubscription(
	ctx context.Context,
	sub *models.Subscription,
) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *BillingGormRepository) SaveSubscription(
	ctx context.Context,
	sub *models.Subscription,
) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// --------------------------------------------------
// Plan catalog
// --------------------------------------------------

func (r *BillingGormRepository) GetPlanByID(
	ctx context.Context,
	planID uint,
) (*models.Plan, error) {

	var plan models.Plan
	if err := r.db.WithContext(ctx).First(&plan, planID).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *BillingGormRepository) GetPlanByPriceID(
	ctx context.Context,
	stripePriceID string,
) (*models.Plan, error) {

	var plan models.Plan
	if err := r.db.WithContext(ctx).
		Where("stripe_price_id = ?", stripePriceID).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *BillingGormRepository) ListActivePlans(
	ctx context.Context,
) ([]models.Plan, error) {

	var plans []models.Plan
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("price_amount ASC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// UpsertPlan sincroniza pelo stripe_price_id (catálogo vem da Stripe).
func (r *BillingGormRepository) UpsertPlan(
	ctx context.Context,
	plan *models.Plan,
) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "stripe_price_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "cuts_included", "interval", "price_amount", "currency", "active", "updated_at",
			}),
		}).
		Create(plan).Error
}

// Compile-time check
var _ billing.Repository = (*BillingGormRepository)(nil)
