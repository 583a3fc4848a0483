package billing

import (
	"context"
	"time"
)

// CatalogPrice is one entry of the payment platform's price catalog.
type CatalogPrice struct {
	PriceID      string
	Name         string
	UnitAmount   int64
	Currency     string
	Interval     string
	CutsIncluded int
}

// PaymentGateway é a fachada sobre a plataforma de pagamento. O resto do
// sistema só consome sucesso/falha, identificadores e datas efetivas.
type PaymentGateway interface {
	EnsureCustomer(ctx context.Context, email string, userID uint) (string, error)

	CheckoutURL(ctx context.Context, customerID, priceID string, userID uint) (string, error)

	BillingPortalURL(ctx context.Context, customerID string) (string, error)

	// UpgradeNow troca o preço da assinatura imediatamente, com proração.
	// Retorna o fim do período corrente após a troca.
	UpgradeNow(ctx context.Context, subscriptionID, priceID string) (time.Time, error)

	// ScheduleDowngrade agenda a troca para o fim do período corrente.
	// Retorna o id do schedule e a data efetiva.
	ScheduleDowngrade(ctx context.Context, subscriptionID, priceID string) (string, time.Time, error)

	// ReleaseSchedule desfaz um schedule pendente; a assinatura segue no
	// plano atual.
	ReleaseSchedule(ctx context.Context, scheduleID string) error

	ListCatalogPrices(ctx context.Context) ([]CatalogPrice, error)
}
