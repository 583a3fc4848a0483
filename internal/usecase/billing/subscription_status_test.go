package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/TrueFadeServices/truefade-api/internal/domain/billing"
	"github.com/TrueFadeServices/truefade-api/internal/models"
)

func TestSubscriptionStatus_NoSubscription(t *testing.T) {
	uc := NewSubscriptionStatus(newFakeBillingRepo())

	out, err := uc.Execute(context.Background(), 7)
	require.NoError(t, err)

	assert.False(t, out.HasSubscription)
	assert.False(t, out.CanBook)
	assert.Equal(t, 0, out.RemainingCuts)
	assert.Nil(t, out.ScheduledChange)
}

func TestSubscriptionStatus_ActiveWithPendingDowngrade(t *testing.T) {
	repo := newFakeBillingRepo()

	planName := "Basic"
	priceID := "price_basic"
	effective := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	scheduleID := "sched_1"

	repo.subsByUser[7] = &models.Subscription{
		UserID:                 7,
		PlanName:               "Premium",
		StripePriceID:          "price_premium",
		Status:                 "active",
		CutsIncluded:           8,
		CutsUsed:               5,
		CurrentPeriodEnd:       effective,
		ScheduledPlanName:      &planName,
		ScheduledPriceID:       &priceID,
		ScheduledEffectiveDate: &effective,
		StripeScheduleID:       &scheduleID,
	}

	uc := NewSubscriptionStatus(repo)
	out, err := uc.Execute(context.Background(), 7)
	require.NoError(t, err)

	assert.True(t, out.HasSubscription)
	assert.True(t, out.IsActive)
	assert.True(t, out.CanBook)
	assert.Equal(t, 3, out.RemainingCuts)

	require.NotNil(t, out.ScheduledChange)
	assert.Equal(t, "Basic", out.ScheduledChange.PlanName)
	assert.Equal(t, effective, out.ScheduledChange.EffectiveDate)
}

func TestCanUserBookAppointment(t *testing.T) {
	repo := newFakeBillingRepo()
	uc := NewSubscriptionStatus(repo)

	// Sem assinatura.
	ok, err := uc.CanUserBookAppointment(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, ok)

	// Ativa com saldo.
	repo.subsByUser[7] = &models.Subscription{
		UserID: 7, Status: "active", CutsIncluded: 4, CutsUsed: 3,
	}
	ok, err = uc.CanUserBookAppointment(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, ok)

	// Saldo esgotado.
	repo.subsByUser[7].CutsUsed = 4
	ok, err = uc.CanUserBookAppointment(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetUserRemainingCuts(t *testing.T) {
	repo := newFakeBillingRepo()
	uc := NewSubscriptionStatus(repo)

	got, err := uc.GetUserRemainingCuts(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	repo.subsByUser[7] = &models.Subscription{
		UserID: 7, Status: "active", CutsIncluded: 4, CutsUsed: 1,
	}
	got, err = uc.GetUserRemainingCuts(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestCheckout_CreatesCustomerOnce(t *testing.T) {
	repo := newFakeBillingRepo()
	repo.plansByID[1] = &models.Plan{ID: 1, Name: "Basic", StripePriceID: "price_basic", CutsIncluded: 4, Active: true}

	gw := &fakeGateway{}
	uc := NewCheckout(repo, gw, nil)

	res, err := uc.Execute(context.Background(), CheckoutInput{
		UserID: 7,
		Email:  "customer@example.com",
		PlanID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.test/price_basic", res.URL)
	assert.Equal(t, "cus_test", res.NewStripeCustomerID)

	// Cliente já conhecido: nada de customer novo.
	known := "cus_existing"
	res, err = uc.Execute(context.Background(), CheckoutInput{
		UserID:           7,
		Email:            "customer@example.com",
		StripeCustomerID: &known,
		PlanID:           1,
	})
	require.NoError(t, err)
	assert.Empty(t, res.NewStripeCustomerID)
}

func TestCheckout_InactivePlanRejected(t *testing.T) {
	repo := newFakeBillingRepo()
	repo.plansByID[1] = &models.Plan{ID: 1, Name: "Legacy", StripePriceID: "price_legacy", Active: false}

	uc := NewCheckout(repo, &fakeGateway{}, nil)

	_, err := uc.Execute(context.Background(), CheckoutInput{UserID: 7, Email: "x@example.com", PlanID: 1})
	assert.Error(t, err)
}

func TestSyncPlans(t *testing.T) {
	repo := newFakeBillingRepo()
	gw := &fakeGateway{
		catalog: []domain.CatalogPrice{
			{PriceID: "price_basic", Name: "Basic", UnitAmount: 4900, Currency: "usd", Interval: "month", CutsIncluded: 4},
			{PriceID: "price_premium", Name: "Premium", UnitAmount: 8900, Currency: "usd", Interval: "month", CutsIncluded: 8},
		},
	}

	uc := NewSyncPlans(repo, gw)

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	plans, err := repo.ListActivePlans(context.Background())
	require.NoError(t, err)
	assert.Len(t, plans, 2)

	// Re-sync atualiza em vez de duplicar.
	gw.catalog[0].UnitAmount = 5900
	_, err = uc.Execute(context.Background())
	require.NoError(t, err)

	plans, _ = repo.ListActivePlans(context.Background())
	assert.Len(t, plans, 2)
}
