package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/models"
)

func plan(price string, cuts int) *models.Plan {
	return &models.Plan{Name: "Plan " + price, StripePriceID: price, CutsIncluded: cuts}
}

func activeSub(price string, cuts int) *models.Subscription {
	return &models.Subscription{
		Status:           "active",
		PlanName:         "Plan " + price,
		StripePriceID:    price,
		CutsIncluded:     cuts,
		CurrentPeriodEnd: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestClassify_DowngradeDeferredToPeriodEnd(t *testing.T) {
	sub := activeSub("price_premium", 8)

	decision, err := Classify(sub, plan("price_premium", 8), plan("price_basic", 4))
	require.NoError(t, err)

	assert.Equal(t, ChangeDowngrade, decision.Kind)
	assert.Equal(t, sub.CurrentPeriodEnd, decision.EffectiveAt)
}

func TestClassify_UpgradeIsImmediate(t *testing.T) {
	sub := activeSub("price_basic", 4)

	decision, err := Classify(sub, plan("price_basic", 4), plan("price_premium", 8))
	require.NoError(t, err)

	assert.Equal(t, ChangeUpgrade, decision.Kind)
}

func TestClassify_SamePlanRejected(t *testing.T) {
	sub := activeSub("price_basic", 4)

	_, err := Classify(sub, plan("price_basic", 4), plan("price_basic", 4))
	assert.True(t, httperr.IsBusiness(err, "same_plan"))
}

func TestClassify_LateralMoveCountsAsUpgrade(t *testing.T) {
	sub := activeSub("price_monthly", 4)

	decision, err := Classify(sub, plan("price_monthly", 4), plan("price_yearly", 4))
	require.NoError(t, err)

	assert.Equal(t, ChangeUpgrade, decision.Kind)
}

func TestClassify_UnknownCurrentPlanCountsAsUpgrade(t *testing.T) {
	// Preço aposentado: o plano atual não está mais no catálogo.
	sub := activeSub("price_retired", 8)

	decision, err := Classify(sub, nil, plan("price_basic", 4))
	require.NoError(t, err)

	assert.Equal(t, ChangeUpgrade, decision.Kind)
}

func TestApplyUpgrade_KeepsUsageAndClearsPending(t *testing.T) {
	sub := activeSub("price_basic", 4)
	sub.CutsUsed = 3

	schedule := "sched_1"
	pendingPrice := "price_mini"
	sub.StripeScheduleID = &schedule
	sub.ScheduledPriceID = &pendingPrice

	ApplyUpgrade(sub, plan("price_premium", 8))

	assert.Equal(t, "price_premium", sub.StripePriceID)
	assert.Equal(t, 8, sub.CutsIncluded)
	// Uso atravessa a troca: 3 usados de 8.
	assert.Equal(t, 3, sub.CutsUsed)
	assert.Equal(t, 5, RemainingCuts(sub))

	assert.False(t, HasPendingDowngrade(sub))
	assert.Nil(t, sub.StripeScheduleID)
}

func TestRecordScheduledDowngrade_SupersedesPrevious(t *testing.T) {
	sub := activeSub("price_premium", 8)

	first := plan("price_basic", 4)
	RecordScheduledDowngrade(sub, first, "sched_1", sub.CurrentPeriodEnd)

	second := plan("price_mini", 2)
	RecordScheduledDowngrade(sub, second, "sched_2", sub.CurrentPeriodEnd)

	// No máximo um downgrade pendente; o último pedido vence.
	require.NotNil(t, sub.ScheduledPriceID)
	assert.Equal(t, "price_mini", *sub.ScheduledPriceID)
	assert.Equal(t, "sched_2", *sub.StripeScheduleID)

	// O plano corrente não muda até a virada do período.
	assert.Equal(t, "price_premium", sub.StripePriceID)
	assert.Equal(t, 8, sub.CutsIncluded)
}

func TestClearScheduledChange(t *testing.T) {
	sub := activeSub("price_premium", 8)
	RecordScheduledDowngrade(sub, plan("price_basic", 4), "sched_1", sub.CurrentPeriodEnd)

	ClearScheduledChange(sub)

	assert.False(t, HasPendingDowngrade(sub))
	assert.Nil(t, sub.ScheduledPlanName)
	assert.Nil(t, sub.ScheduledEffectiveDate)
	assert.Nil(t, sub.StripeScheduleID)
}

func TestRollPeriod_ResetsUsage(t *testing.T) {
	sub := activeSub("price_basic", 4)
	sub.CutsUsed = 4

	start := sub.CurrentPeriodEnd
	end := start.AddDate(0, 1, 0)
	RollPeriod(sub, start, end)

	assert.Equal(t, 0, sub.CutsUsed)
	assert.Equal(t, start, sub.CurrentPeriodStart)
	assert.Equal(t, end, sub.CurrentPeriodEnd)
	assert.Equal(t, 4, RemainingCuts(sub))
}
