package billing

import (
	"context"

	"github.com/TrueFadeServices/truefade-api/internal/audit"
	domain "github.com/TrueFadeServices/truefade-api/internal/domain/billing"
	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/models"
)

type ChangePlanResult struct {
	Subscription *models.Subscription
	Decision     *domain.ChangeDecision
}

type ChangePlan struct {
	repo    domain.Repository
	gateway domain.PaymentGateway
	audit   *audit.Dispatcher
}

func NewChangePlan(
	repo domain.Repository,
	gateway domain.PaymentGateway,
	audit *audit.Dispatcher,
) *ChangePlan {
	return &ChangePlan{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

// Execute classifica e aplica a troca de plano.
//
// Upgrade é imediato e prorrateado; qualquer downgrade pendente é
// liberado antes. Downgrade é agendado para o fim do período; um novo
// downgrade substitui o agendado (nunca existem dois).
func (uc *ChangePlan) Execute(
	ctx context.Context,
	userID uint,
	targetPlanID uint,
) (*ChangePlanResult, error) {

	sub, err := uc.repo.GetSubscriptionByUserID(ctx, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("subscription_not_found")
	}
	if sub.StripeSubscriptionID == "" {
		return nil, httperr.ErrBusiness("subscription_not_found")
	}

	target, err := uc.repo.GetPlanByID(ctx, targetPlanID)
	if err != nil {
		return nil, httperr.ErrBusiness("plan_not_found")
	}

	// Plano atual pode não estar no catálogo (preço aposentado).
	current, _ := uc.repo.GetPlanByPriceID(ctx, sub.StripePriceID)

	decision, err := domain.Classify(sub, current, target)
	if err != nil {
		return nil, err
	}

	switch decision.Kind {

	case domain.ChangeUpgrade:
		if domain.HasPendingDowngrade(sub) && sub.StripeScheduleID != nil {
			if err := uc.gateway.ReleaseSchedule(ctx, *sub.StripeScheduleID); err != nil {
				return nil, err
			}
		}

		periodEnd, err := uc.gateway.UpgradeNow(ctx, sub.StripeSubscriptionID, target.StripePriceID)
		if err != nil {
			return nil, err
		}

		domain.ApplyUpgrade(sub, target)
		sub.CurrentPeriodEnd = periodEnd

	case domain.ChangeDowngrade:
		if domain.HasPendingDowngrade(sub) && sub.StripeScheduleID != nil {
			if err := uc.gateway.ReleaseSchedule(ctx, *sub.StripeScheduleID); err != nil {
				return nil, err
			}
		}

		scheduleID, effectiveAt, err := uc.gateway.ScheduleDowngrade(
			ctx, sub.StripeSubscriptionID, target.StripePriceID,
		)
		if err != nil {
			return nil, err
		}

		domain.RecordScheduledDowngrade(sub, target, scheduleID, effectiveAt)
		decision.EffectiveAt = effectiveAt
	}

	if err := uc.repo.SaveSubscription(ctx, sub); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "plan_change_" + string(decision.Kind),
		Entity:   "subscription",
		EntityID: &sub.ID,
		Metadata: map[string]any{"target_plan": target.Name},
	})

	return &ChangePlanResult{Subscription: sub, Decision: decision}, nil
}
