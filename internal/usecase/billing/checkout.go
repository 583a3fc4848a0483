package billing

import (
	"context"

	"github.com/TrueFadeServices/truefade-api/internal/audit"
	domain "github.com/TrueFadeServices/truefade-api/internal/domain/billing"
	"github.com/TrueFadeServices/truefade-api/internal/httperr"
)

type CheckoutInput struct {
	UserID uint
	Email  string

	// Stripe customer id já conhecido, se houver.
	StripeCustomerID *string

	PlanID uint
}

type CheckoutResult struct {
	URL string

	// Preenchido quando o customer foi criado agora; o handler persiste.
	NewStripeCustomerID string
}

type Checkout struct {
	repo    domain.Repository
	gateway domain.PaymentGateway
	audit   *audit.Dispatcher
}

func NewCheckout(
	repo domain.Repository,
	gateway domain.PaymentGateway,
	audit *audit.Dispatcher,
) *Checkout {
	return &Checkout{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

func (uc *Checkout) Execute(
	ctx context.Context,
	in CheckoutInput,
) (*CheckoutResult, error) {

	plan, err := uc.repo.GetPlanByID(ctx, in.PlanID)
	if err != nil {
		return nil, httperr.ErrBusiness("plan_not_found")
	}
	if !plan.Active {
		return nil, httperr.ErrBusiness("plan_not_found")
	}

	res := &CheckoutResult{}

	customerID := ""
	if in.StripeCustomerID != nil && *in.StripeCustomerID != "" {
		customerID = *in.StripeCustomerID
	} else {
		customerID, err = uc.gateway.EnsureCustomer(ctx, in.Email, in.UserID)
		if err != nil {
			return nil, err
		}
		res.NewStripeCustomerID = customerID
	}

	url, err := uc.gateway.CheckoutURL(ctx, customerID, plan.StripePriceID, in.UserID)
	if err != nil {
		return nil, err
	}

	res.URL = url

	userID := in.UserID
	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "checkout_started",
		Entity:   "plan",
		EntityID: &plan.ID,
	})

	return res, nil
}
