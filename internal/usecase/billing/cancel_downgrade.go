package billing

import (
	"context"

	"github.com/TrueFadeServices/truefade-api/internal/audit"
	domain "github.com/TrueFadeServices/truefade-api/internal/domain/billing"
	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/models"
)

type CancelDowngrade struct {
	repo    domain.Repository
	gateway domain.PaymentGateway
	audit   *audit.Dispatcher
}

func NewCancelDowngrade(
	repo domain.Repository,
	gateway domain.PaymentGateway,
	audit *audit.Dispatcher,
) *CancelDowngrade {
	return &CancelDowngrade{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

// Execute desfaz o downgrade pendente; a assinatura segue no plano
// atual, sem nenhum outro efeito.
func (uc *CancelDowngrade) Execute(
	ctx context.Context,
	userID uint,
) (*models.Subscription, error) {

	sub, err := uc.repo.GetSubscriptionByUserID(ctx, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("subscription_not_found")
	}

	if !domain.HasPendingDowngrade(sub) || sub.StripeScheduleID == nil {
		return nil, httperr.ErrBusiness("no_pending_downgrade")
	}

	if err := uc.gateway.ReleaseSchedule(ctx, *sub.StripeScheduleID); err != nil {
		return nil, err
	}

	domain.ClearScheduledChange(sub)

	if err := uc.repo.SaveSubscription(ctx, sub); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "downgrade_cancelled",
		Entity:   "subscription",
		EntityID: &sub.ID,
	})

	return sub, nil
}
