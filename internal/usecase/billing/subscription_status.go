package billing

import (
	"context"
	"time"

	domain "github.com/TrueFadeServices/truefade-api/internal/domain/billing"

	"gorm.io/gorm"
)

type ScheduledChange struct {
	PlanName      string    `json:"plan_name"`
	StripePriceID string    `json:"stripe_price_id"`
	EffectiveDate time.Time `json:"effective_date"`
}

type SubscriptionStatusDTO struct {
	HasSubscription bool `json:"has_subscription"`

	PlanName      string `json:"plan_name,omitempty"`
	StripePriceID string `json:"stripe_price_id,omitempty"`
	Status        string `json:"status,omitempty"`

	CurrentPeriodStart *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`

	CutsIncluded  int `json:"cuts_included"`
	CutsUsed      int `json:"cuts_used"`
	RemainingCuts int `json:"remaining_cuts"`

	IsActive      bool `json:"is_active"`
	WillAutoRenew bool `json:"will_auto_renew"`
	CanBook       bool `json:"can_book"`

	ScheduledChange *ScheduledChange `json:"scheduled_change,omitempty"`
}

type SubscriptionStatus struct {
	repo domain.Repository
}

func NewSubscriptionStatus(repo domain.Repository) *SubscriptionStatus {
	return &SubscriptionStatus{repo: repo}
}

func (uc *SubscriptionStatus) Execute(
	ctx context.Context,
	userID uint,
) (*SubscriptionStatusDTO, error) {

	sub, err := uc.repo.GetSubscriptionByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &SubscriptionStatusDTO{}, nil
		}
		return nil, err
	}

	out := &SubscriptionStatusDTO{
		HasSubscription:    true,
		PlanName:           sub.PlanName,
		StripePriceID:      sub.StripePriceID,
		Status:             sub.Status,
		CurrentPeriodStart: &sub.CurrentPeriodStart,
		CurrentPeriodEnd:   &sub.CurrentPeriodEnd,
		CutsIncluded:       sub.CutsIncluded,
		CutsUsed:           sub.CutsUsed,
		RemainingCuts:      domain.RemainingCuts(sub),
		IsActive:           domain.IsActive(sub),
		WillAutoRenew:      domain.WillAutoRenew(sub),
		CanBook:            domain.CanBook(sub),
	}

	if domain.HasPendingDowngrade(sub) {
		out.ScheduledChange = &ScheduledChange{
			PlanName:      deref(sub.ScheduledPlanName),
			StripePriceID: deref(sub.ScheduledPriceID),
		}
		if sub.ScheduledEffectiveDate != nil {
			out.ScheduledChange.EffectiveDate = *sub.ScheduledEffectiveDate
		}
	}

	return out, nil
}

// CanUserBookAppointment e GetUserRemainingCuts são as checagens
// autoritativas de leitura expostas ao app; o caminho de escrita ainda
// re-valida sob lock.
func (uc *SubscriptionStatus) CanUserBookAppointment(
	ctx context.Context,
	userID uint,
) (bool, error) {
	sub, err := uc.repo.GetSubscriptionByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return domain.CanBook(sub), nil
}

func (uc *SubscriptionStatus) GetUserRemainingCuts(
	ctx context.Context,
	userID uint,
) (int, error) {
	sub, err := uc.repo.GetSubscriptionByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return domain.RemainingCuts(sub), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
