package payments

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v75"
	portalsession "github.com/stripe/stripe-go/v75/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/customer"
	"github.com/stripe/stripe-go/v75/price"
	stripesub "github.com/stripe/stripe-go/v75/subscription"
	schedules "github.com/stripe/stripe-go/v75/subscriptionschedule"

	"github.com/TrueFadeServices/truefade-api/internal/domain/billing"
)

// StripeGateway implementa billing.PaymentGateway sobre a API da Stripe.
type StripeGateway struct {
	appURL string
}

func NewStripeGateway(secretKey, appURL string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{appURL: appURL}
}

// --------------------------------------------------
// Customer / Checkout / Portal
// --------------------------------------------------

func (g *StripeGateway) EnsureCustomer(
	ctx context.Context,
	email string,
	userID uint,
) (string, error) {

	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Email:  stripe.String(email),
		Metadata: map[string]string{
			"user_id": fmt.Sprint(userID),
		},
	}

	cus, err := customer.New(params)
	if err != nil {
		return "", err
	}
	return cus.ID, nil
}

func (g *StripeGateway) CheckoutURL(
	ctx context.Context,
	customerID string,
	priceID string,
	userID uint,
) (string, error) {

	params := &stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		SuccessURL: stripe.String(g.appURL + "/account"),
		CancelURL:  stripe.String(g.appURL + "/account?canceled=1"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(customerID),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},

		ClientReferenceID: stripe.String(fmt.Sprint(userID)),

		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"user_id": fmt.Sprint(userID),
			},
		},
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		return "", err
	}
	return s.URL, nil
}

func (g *StripeGateway) BillingPortalURL(
	ctx context.Context,
	customerID string,
) (string, error) {

	portal, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Params:    stripe.Params{Context: ctx},
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(g.appURL + "/account"),
	})
	if err != nil {
		return "", err
	}
	return portal.URL, nil
}

// --------------------------------------------------
// Plan change
// --------------------------------------------------

func (g *StripeGateway) UpgradeNow(
	ctx context.Context,
	subscriptionID string,
	priceID string,
) (time.Time, error) {

	sub, err := stripesub.Get(subscriptionID, &stripe.SubscriptionParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return time.Time{}, err
	}
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return time.Time{}, fmt.Errorf("subscription %s has no price item", subscriptionID)
	}

	item := sub.Items.Data[0]

	updated, err := stripesub.Update(subscriptionID, &stripe.SubscriptionParams{
		Params: stripe.Params{Context: ctx},
		Items: []*stripe.SubscriptionItemsParams{
			{
				ID:    stripe.String(item.ID),
				Price: stripe.String(priceID),
			},
		},
		ProrationBehavior: stripe.String("create_prorations"),
	})
	if err != nil {
		return time.Time{}, err
	}

	return time.Unix(updated.CurrentPeriodEnd, 0), nil
}

func (g *StripeGateway) ScheduleDowngrade(
	ctx context.Context,
	subscriptionID string,
	priceID string,
) (string, time.Time, error) {

	sub, err := stripesub.Get(subscriptionID, &stripe.SubscriptionParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return "", time.Time{}, err
	}
	if sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return "", time.Time{}, fmt.Errorf("subscription %s has no price item", subscriptionID)
	}

	currentPriceID := sub.Items.Data[0].Price.ID
	periodStart := sub.CurrentPeriodStart
	periodEnd := sub.CurrentPeriodEnd
	effectiveAt := time.Unix(periodEnd, 0)

	scheduleID := ""
	if sub.Schedule != nil {
		scheduleID = sub.Schedule.ID
	}

	if scheduleID == "" {
		schedule, err := schedules.New(&stripe.SubscriptionScheduleParams{
			Params:           stripe.Params{Context: ctx},
			FromSubscription: stripe.String(sub.ID),
		})
		if err != nil {
			return "", time.Time{}, err
		}
		scheduleID = schedule.ID
	}

	// Fase atual até o fim do período, plano alvo a partir daí.
	_, err = schedules.Update(scheduleID, &stripe.SubscriptionScheduleParams{
		Params:      stripe.Params{Context: ctx},
		EndBehavior: stripe.String("release"),
		Phases: []*stripe.SubscriptionSchedulePhaseParams{
			{
				StartDate: stripe.Int64(periodStart),
				EndDate:   stripe.Int64(periodEnd),
				Items: []*stripe.SubscriptionSchedulePhaseItemParams{
					{Price: stripe.String(currentPriceID), Quantity: stripe.Int64(1)},
				},
			},
			{
				StartDate: stripe.Int64(periodEnd),
				Items: []*stripe.SubscriptionSchedulePhaseItemParams{
					{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
				},
			},
		},
	})
	if err != nil {
		return "", time.Time{}, err
	}

	return scheduleID, effectiveAt, nil
}

func (g *StripeGateway) ReleaseSchedule(
	ctx context.Context,
	scheduleID string,
) error {
	_, err := schedules.Release(scheduleID, &stripe.SubscriptionScheduleReleaseParams{
		Params: stripe.Params{Context: ctx},
	})
	return err
}

// --------------------------------------------------
// Catalog sync
// --------------------------------------------------

// ListCatalogPrices lê os preços ativos de assinatura. O número de
// cortes por período vem do metadata "cuts_included" do preço.
func (g *StripeGateway) ListCatalogPrices(
	ctx context.Context,
) ([]billing.CatalogPrice, error) {

	params := &stripe.PriceListParams{
		ListParams: stripe.ListParams{Context: ctx},
		Active:     stripe.Bool(true),
	}
	params.AddExpand("data.product")

	var out []billing.CatalogPrice

	iter := price.List(params)
	for iter.Next() {
		p := iter.Price()
		if p.Recurring == nil {
			continue
		}

		name := p.Nickname
		if name == "" && p.Product != nil {
			name = p.Product.Name
		}

		cuts := 0
		if raw, ok := p.Metadata["cuts_included"]; ok {
			if n, err := strconv.Atoi(raw); err == nil {
				cuts = n
			}
		}

		out = append(out, billing.CatalogPrice{
			PriceID:      p.ID,
			Name:         name,
			UnitAmount:   p.UnitAmount,
			Currency:     string(p.Currency),
			Interval:     string(p.Recurring.Interval),
			CutsIncluded: cuts,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// Compile-time check
var _ billing.PaymentGateway = (*StripeGateway)(nil)
