package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
	"gorm.io/gorm"

	domain "github.com/TrueFadeServices/truefade-api/internal/domain/billing"
	"github.com/TrueFadeServices/truefade-api/internal/infra/payments"
	"github.com/TrueFadeServices/truefade-api/internal/models"
)

// ======================================================
// HANDLER — webhook Stripe
// ======================================================

// StripeWebhookHandler é o dono do estado da assinatura: períodos,
// status e a virada do downgrade agendado chegam por aqui, nunca por
// escrita direta do app.
type StripeWebhookHandler struct {
	repo domain.Repository

	webhookSecret string
}

func NewStripeWebhookHandler(repo domain.Repository, webhookSecret string) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		repo:          repo,
		webhookSecret: webhookSecret,
	}
}

func (h *StripeWebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, 65536))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_signature"})
		return
	}

	ctx := c.Request.Context()

	switch event.Type {

	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err == nil {
			h.bindCheckout(ctx, &session)
		}

	case "customer.subscription.created",
		"customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err == nil {
			h.syncSubscription(ctx, &sub)
		}

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err == nil {
			h.markCanceled(ctx, &sub)
		}

	default:
		// Eventos fora do nosso interesse são confirmados sem ação.
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// bindCheckout garante a linha local assim que o checkout fecha; os
// detalhes (preço, período) chegam no customer.subscription.created.
func (h *StripeWebhookHandler) bindCheckout(ctx context.Context, session *stripe.CheckoutSession) {
	if session.Subscription == nil || session.ClientReferenceID == "" {
		return
	}

	userID, err := strconv.ParseUint(session.ClientReferenceID, 10, 64)
	if err != nil {
		log.Println("stripe webhook: bad client_reference_id:", session.ClientReferenceID)
		return
	}

	if _, err := h.repo.GetSubscriptionByStripeID(ctx, session.Subscription.ID); err == nil {
		return
	}

	row := &models.Subscription{
		UserID:               uint(userID),
		StripeSubscriptionID: session.Subscription.ID,
		Status:               "incomplete",
	}
	if err := h.repo.CreateSubscription(ctx, row); err != nil {
		log.Println("stripe webhook: create subscription:", err)
	}
}

func (h *StripeWebhookHandler) syncSubscription(ctx context.Context, remote *stripe.Subscription) {
	sub, err := h.repo.GetSubscriptionByStripeID(ctx, remote.ID)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Println("stripe webhook: load subscription:", err)
			return
		}

		// Evento chegou antes do checkout.session.completed.
		userID, ok := userIDFromMetadata(remote)
		if !ok {
			log.Println("stripe webhook: subscription without user_id metadata:", remote.ID)
			return
		}

		sub = &models.Subscription{
			UserID:               userID,
			StripeSubscriptionID: remote.ID,
		}
		if err := h.repo.CreateSubscription(ctx, sub); err != nil {
			log.Println("stripe webhook: create subscription:", err)
			return
		}
	}

	sub.Status = payments.NormalizeStatus(string(remote.Status))
	sub.CancelAtPeriodEnd = remote.CancelAtPeriodEnd

	var priceID string
	if len(remote.Items.Data) > 0 && remote.Items.Data[0].Price != nil {
		priceID = remote.Items.Data[0].Price.ID
	}

	periodStart := time.Unix(remote.CurrentPeriodStart, 0)
	periodEnd := time.Unix(remote.CurrentPeriodEnd, 0)

	// 1️⃣ Virada de período: novo ciclo zera os cortes usados.
	if periodEnd.After(sub.CurrentPeriodEnd) {
		domain.RollPeriod(sub, periodStart, periodEnd)
	} else {
		sub.CurrentPeriodStart = periodStart
		sub.CurrentPeriodEnd = periodEnd
	}

	// 2️⃣ Preço mudou: ou o schedule do downgrade virou, ou é o
	// primeiro sync depois do checkout.
	if priceID != "" && priceID != sub.StripePriceID {
		if plan, err := h.repo.GetPlanByPriceID(ctx, priceID); err == nil {
			sub.PlanName = plan.Name
			sub.CutsIncluded = plan.CutsIncluded
		}
		sub.StripePriceID = priceID

		if sub.ScheduledPriceID != nil && *sub.ScheduledPriceID == priceID {
			domain.ClearScheduledChange(sub)
		}
	}

	if err := h.repo.SaveSubscription(ctx, sub); err != nil {
		log.Println("stripe webhook: save subscription:", err)
	}
}

func (h *StripeWebhookHandler) markCanceled(ctx context.Context, remote *stripe.Subscription) {
	sub, err := h.repo.GetSubscriptionByStripeID(ctx, remote.ID)
	if err != nil {
		return
	}

	sub.Status = "canceled"
	domain.ClearScheduledChange(sub)

	if err := h.repo.SaveSubscription(ctx, sub); err != nil {
		log.Println("stripe webhook: save subscription:", err)
	}
}

func userIDFromMetadata(remote *stripe.Subscription) (uint, bool) {
	raw, ok := remote.Metadata["user_id"]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
