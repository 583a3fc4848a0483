package billing

import (
	"time"

	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/models"
)

// ===============================
// Plan Change Policy
// ===============================

type ChangeKind string

const (
	// Applied now, prorated by the payment platform.
	ChangeUpgrade ChangeKind = "upgrade"
	// Deferred to the end of the current billing period.
	ChangeDowngrade ChangeKind = "downgrade"
)

type ChangeDecision struct {
	Kind        ChangeKind
	Target      *models.Plan
	EffectiveAt time.Time
}

// Classify decide entre upgrade imediato e downgrade agendado.
// Downgrade ⟺ o plano alvo inclui menos cortes por período; movimentos
// laterais contam como upgrade.
func Classify(sub *models.Subscription, current *models.Plan, target *models.Plan) (*ChangeDecision, error) {
	if sub == nil || target == nil {
		return nil, httperr.ErrBusiness("subscription_not_found")
	}

	if target.StripePriceID == sub.StripePriceID {
		return nil, httperr.ErrBusiness("same_plan")
	}

	if current != nil && target.CutsIncluded < current.CutsIncluded {
		return &ChangeDecision{
			Kind:        ChangeDowngrade,
			Target:      target,
			EffectiveAt: sub.CurrentPeriodEnd,
		}, nil
	}

	return &ChangeDecision{
		Kind:   ChangeUpgrade,
		Target: target,
	}, nil
}

// ApplyUpgrade muda o plano imediatamente; cuts_used atravessa o período.
func ApplyUpgrade(sub *models.Subscription, target *models.Plan) {
	sub.PlanName = target.Name
	sub.StripePriceID = target.StripePriceID
	sub.CutsIncluded = target.CutsIncluded

	ClearScheduledChange(sub)
}

// RecordScheduledDowngrade registra o downgrade pendente; um novo pedido
// substitui o anterior (no máximo um agendado por assinatura).
func RecordScheduledDowngrade(sub *models.Subscription, target *models.Plan, scheduleID string, effectiveAt time.Time) {
	sub.ScheduledPlanName = &target.Name
	sub.ScheduledPriceID = &target.StripePriceID
	sub.ScheduledEffectiveDate = &effectiveAt
	sub.StripeScheduleID = &scheduleID
}

func ClearScheduledChange(sub *models.Subscription) {
	sub.ScheduledPlanName = nil
	sub.ScheduledPriceID = nil
	sub.ScheduledEffectiveDate = nil
	sub.StripeScheduleID = nil
}

// RollPeriod avança o período de cobrança e zera o uso. Se o downgrade
// agendado amadureceu (o preço vivo já é o agendado), ele é promovido.
func RollPeriod(sub *models.Subscription, start, end time.Time) {
	sub.CurrentPeriodStart = start
	sub.CurrentPeriodEnd = end
	sub.CutsUsed = 0
}
