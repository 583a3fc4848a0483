package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/TrueFadeServices/truefade-api/internal/domain/billing"
	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/models"
)

// ===============================
// Fakes
// ===============================

type fakeBillingRepo struct {
	subsByUser map[uint]*models.Subscription
	plansByID  map[uint]*models.Plan
}

func newFakeBillingRepo() *fakeBillingRepo {
	return &fakeBillingRepo{
		subsByUser: make(map[uint]*models.Subscription),
		plansByID:  make(map[uint]*models.Plan),
	}
}

func (f *fakeBillingRepo) GetSubscriptionByUserID(_ context.Context, userID uint) (*models.Subscription, error) {
	sub, ok := f.subsByUser[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sub, nil
}

func (f *fakeBillingRepo) GetSubscriptionByStripeID(_ context.Context, stripeID string) (*models.Subscription, error) {
	for _, sub := range f.subsByUser {
		if sub.StripeSubscriptionID == stripeID {
			return sub, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBillingRepo) CreateSubscription(_ context.Context, sub *models.Subscription) error {
	f.subsByUser[sub.UserID] = sub
	return nil
}

func (f *fakeBillingRepo) SaveSubscription(_ context.Context, sub *models.Subscription) error {
	f.subsByUser[sub.UserID] = sub
	return nil
}

func (f *fakeBillingRepo) GetPlanByID(_ context.Context, planID uint) (*models.Plan, error) {
	plan, ok := f.plansByID[planID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return plan, nil
}

func (f *fakeBillingRepo) GetPlanByPriceID(_ context.Context, priceID string) (*models.Plan, error) {
	for _, plan := range f.plansByID {
		if plan.StripePriceID == priceID {
			return plan, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBillingRepo) ListActivePlans(_ context.Context) ([]models.Plan, error) {
	var out []models.Plan
	for _, plan := range f.plansByID {
		if plan.Active {
			out = append(out, *plan)
		}
	}
	return out, nil
}

func (f *fakeBillingRepo) UpsertPlan(_ context.Context, plan *models.Plan) error {
	for id, existing := range f.plansByID {
		if existing.StripePriceID == plan.StripePriceID {
			plan.ID = id
			f.plansByID[id] = plan
			return nil
		}
	}
	plan.ID = uint(len(f.plansByID) + 1)
	f.plansByID[plan.ID] = plan
	return nil
}

var _ domain.Repository = (*fakeBillingRepo)(nil)

type fakeGateway struct {
	periodEnd time.Time

	upgrades  []string // price ids trocados na hora
	schedules []string // price ids agendados
	released  []string // schedule ids liberados

	nextScheduleID string
	catalog        []domain.CatalogPrice
}

func (f *fakeGateway) EnsureCustomer(_ context.Context, _ string, userID uint) (string, error) {
	return "cus_test", nil
}

func (f *fakeGateway) CheckoutURL(_ context.Context, _, priceID string, _ uint) (string, error) {
	return "https://checkout.test/" + priceID, nil
}

func (f *fakeGateway) BillingPortalURL(_ context.Context, _ string) (string, error) {
	return "https://portal.test", nil
}

func (f *fakeGateway) UpgradeNow(_ context.Context, _, priceID string) (time.Time, error) {
	f.upgrades = append(f.upgrades, priceID)
	return f.periodEnd, nil
}

func (f *fakeGateway) ScheduleDowngrade(_ context.Context, _, priceID string) (string, time.Time, error) {
	f.schedules = append(f.schedules, priceID)
	return f.nextScheduleID, f.periodEnd, nil
}

func (f *fakeGateway) ReleaseSchedule(_ context.Context, scheduleID string) error {
	f.released = append(f.released, scheduleID)
	return nil
}

func (f *fakeGateway) ListCatalogPrices(_ context.Context) ([]domain.CatalogPrice, error) {
	return f.catalog, nil
}

var _ domain.PaymentGateway = (*fakeGateway)(nil)

// ===============================
// Fixtures
// ===============================

func seedChangePlan(t *testing.T) (*fakeBillingRepo, *fakeGateway, *ChangePlan) {
	t.Helper()

	repo := newFakeBillingRepo()
	repo.plansByID[1] = &models.Plan{ID: 1, Name: "Basic", StripePriceID: "price_basic", CutsIncluded: 4, Active: true}
	repo.plansByID[2] = &models.Plan{ID: 2, Name: "Premium", StripePriceID: "price_premium", CutsIncluded: 8, Active: true}
	repo.plansByID[3] = &models.Plan{ID: 3, Name: "Mini", StripePriceID: "price_mini", CutsIncluded: 2, Active: true}

	gw := &fakeGateway{
		periodEnd:      time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		nextScheduleID: "sched_1",
	}

	return repo, gw, NewChangePlan(repo, gw, nil)
}

func premiumSub() *models.Subscription {
	return &models.Subscription{
		ID:                   1,
		UserID:               7,
		PlanName:             "Premium",
		StripePriceID:        "price_premium",
		StripeSubscriptionID: "sub_1",
		Status:               "active",
		CutsIncluded:         8,
		CutsUsed:             3,
		CurrentPeriodEnd:     time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

// ===============================
// Tests
// ===============================

func TestChangePlan_DowngradeIsScheduled(t *testing.T) {
	repo, gw, uc := seedChangePlan(t)
	repo.subsByUser[7] = premiumSub()

	res, err := uc.Execute(context.Background(), 7, 1) // Premium → Basic
	require.NoError(t, err)

	assert.Equal(t, domain.ChangeDowngrade, res.Decision.Kind)
	assert.Equal(t, gw.periodEnd, res.Decision.EffectiveAt)
	assert.Equal(t, []string{"price_basic"}, gw.schedules)
	assert.Empty(t, gw.upgrades)

	sub := repo.subsByUser[7]
	// Plano atual intocado até a virada.
	assert.Equal(t, "price_premium", sub.StripePriceID)
	assert.Equal(t, 8, sub.CutsIncluded)
	require.NotNil(t, sub.ScheduledPriceID)
	assert.Equal(t, "price_basic", *sub.ScheduledPriceID)
	require.NotNil(t, sub.StripeScheduleID)
	assert.Equal(t, "sched_1", *sub.StripeScheduleID)
}

func TestChangePlan_SecondDowngradeSupersedesFirst(t *testing.T) {
	repo, gw, uc := seedChangePlan(t)
	repo.subsByUser[7] = premiumSub()

	_, err := uc.Execute(context.Background(), 7, 1) // agenda Basic
	require.NoError(t, err)

	gw.nextScheduleID = "sched_2"
	_, err = uc.Execute(context.Background(), 7, 3) // agenda Mini por cima
	require.NoError(t, err)

	// O schedule antigo foi liberado antes do novo.
	assert.Equal(t, []string{"sched_1"}, gw.released)
	assert.Equal(t, []string{"price_basic", "price_mini"}, gw.schedules)

	sub := repo.subsByUser[7]
	assert.Equal(t, "price_mini", *sub.ScheduledPriceID)
	assert.Equal(t, "sched_2", *sub.StripeScheduleID)
}

func TestChangePlan_UpgradeAppliesImmediatelyAndKeepsUsage(t *testing.T) {
	repo, gw, uc := seedChangePlan(t)

	sub := premiumSub()
	sub.PlanName = "Basic"
	sub.StripePriceID = "price_basic"
	sub.CutsIncluded = 4
	sub.CutsUsed = 2
	repo.subsByUser[7] = sub

	res, err := uc.Execute(context.Background(), 7, 2) // Basic → Premium
	require.NoError(t, err)

	assert.Equal(t, domain.ChangeUpgrade, res.Decision.Kind)
	assert.Equal(t, []string{"price_premium"}, gw.upgrades)
	assert.Empty(t, gw.schedules)

	got := repo.subsByUser[7]
	assert.Equal(t, "price_premium", got.StripePriceID)
	assert.Equal(t, 8, got.CutsIncluded)
	assert.Equal(t, 2, got.CutsUsed)
	assert.Equal(t, gw.periodEnd, got.CurrentPeriodEnd)
}

func TestChangePlan_UpgradeClearsPendingDowngrade(t *testing.T) {
	repo, gw, uc := seedChangePlan(t)
	repo.subsByUser[7] = premiumSub()

	_, err := uc.Execute(context.Background(), 7, 1) // agenda downgrade
	require.NoError(t, err)

	// Premium com downgrade pendente → upgrade "de volta" não existe;
	// simulamos assinatura no Basic com downgrade pendente para Mini.
	sub := repo.subsByUser[7]
	sub.PlanName = "Basic"
	sub.StripePriceID = "price_basic"
	sub.CutsIncluded = 4

	_, err = uc.Execute(context.Background(), 7, 2) // upgrade Premium
	require.NoError(t, err)

	got := repo.subsByUser[7]
	assert.False(t, domain.HasPendingDowngrade(got))
	assert.Contains(t, gw.released, "sched_1")
	assert.Equal(t, "price_premium", got.StripePriceID)
}

func TestChangePlan_SamePlanRejected(t *testing.T) {
	repo, gw, uc := seedChangePlan(t)
	repo.subsByUser[7] = premiumSub()

	_, err := uc.Execute(context.Background(), 7, 2) // Premium → Premium
	assert.True(t, httperr.IsBusiness(err, "same_plan"))
	assert.Empty(t, gw.upgrades)
	assert.Empty(t, gw.schedules)
}

func TestChangePlan_NoSubscription(t *testing.T) {
	_, _, uc := seedChangePlan(t)

	_, err := uc.Execute(context.Background(), 99, 1)
	assert.True(t, httperr.IsBusiness(err, "subscription_not_found"))
}

func TestCancelDowngrade(t *testing.T) {
	repo, gw, change := seedChangePlan(t)
	repo.subsByUser[7] = premiumSub()

	_, err := change.Execute(context.Background(), 7, 1)
	require.NoError(t, err)

	cancel := NewCancelDowngrade(repo, gw, nil)
	sub, err := cancel.Execute(context.Background(), 7)
	require.NoError(t, err)

	assert.False(t, domain.HasPendingDowngrade(sub))
	assert.Contains(t, gw.released, "sched_1")
	assert.Equal(t, "Premium", sub.PlanName)
}

func TestCancelDowngrade_NothingPending(t *testing.T) {
	repo, gw, _ := seedChangePlan(t)
	repo.subsByUser[7] = premiumSub()

	cancel := NewCancelDowngrade(repo, gw, nil)
	_, err := cancel.Execute(context.Background(), 7)
	assert.True(t, httperr.IsBusiness(err, "no_pending_downgrade"))
}
