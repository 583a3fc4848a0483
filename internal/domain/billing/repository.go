package billing

import (
	"context"

	"github.com/TrueFadeServices/truefade-api/internal/models"
)

type Repository interface {
	// -------- Subscription --------
	GetSubscriptionByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Subscription, error)

	GetSubscriptionByStripeID(
		ctx context.Context,
		stripeSubscriptionID string,
	) (*models.Subscription, error)

	CreateSubscription(
		ctx context.Context,
		sub *models.Subscription,
	) error

	SaveSubscription(
		ctx context.Context,
		sub *models.Subscription,
	) error

	// -------- Plan catalog --------
	GetPlanByID(
		ctx context.Context,
		planID uint,
	) (*models.Plan, error)

	GetPlanByPriceID(
		ctx context.Context,
		stripePriceID string,
	) (*models.Plan, error)

	ListActivePlans(
		ctx context.Context,
	) ([]models.Plan, error)

	UpsertPlan(
		ctx context.Context,
		plan *models.Plan,
	) error
}
