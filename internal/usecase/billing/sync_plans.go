package billing

import (
	"context"

	domain "github.com/TrueFadeServices/truefade-api/internal/domain/billing"
	"github.com/TrueFadeServices/truefade-api/internal/models"
)

// SyncPlans espelha o catálogo de preços da Stripe na tabela local.
// O catálogo é somente-leitura para o resto do app.
type SyncPlans struct {
	repo    domain.Repository
	gateway domain.PaymentGateway
}

func NewSyncPlans(
	repo domain.Repository,
	gateway domain.PaymentGateway,
) *SyncPlans {
	return &SyncPlans{
		repo:    repo,
		gateway: gateway,
	}
}

func (uc *SyncPlans) Execute(ctx context.Context) (int, error) {

	prices, err := uc.gateway.ListCatalogPrices(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, p := range prices {
		plan := &models.Plan{
			StripePriceID: p.PriceID,
			Name:          p.Name,
			CutsIncluded:  p.CutsIncluded,
			Interval:      p.Interval,
			PriceAmount:   p.UnitAmount,
			Currency:      p.Currency,
			Active:        true,
		}

		if err := uc.repo.UpsertPlan(ctx, plan); err != nil {
			return synced, err
		}
		synced++
	}

	return synced, nil
}
