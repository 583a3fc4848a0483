package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/TrueFadeServices/truefade-api/internal/domain/billing"
	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/httpresp"
	"github.com/TrueFadeServices/truefade-api/internal/middleware"
	"github.com/TrueFadeServices/truefade-api/internal/models"
	uc "github.com/TrueFadeServices/truefade-api/internal/usecase/billing"
)

// ======================================================
// HANDLER — billing / assinatura
// ======================================================

type BillingHandler struct {
	db *gorm.DB

	checkout        *uc.Checkout
	status          *uc.SubscriptionStatus
	changePlan      *uc.ChangePlan
	cancelDowngrade *uc.CancelDowngrade

	gateway domain.PaymentGateway
}

func NewBillingHandler(
	db *gorm.DB,
	checkout *uc.Checkout,
	status *uc.SubscriptionStatus,
	changePlan *uc.ChangePlan,
	cancelDowngrade *uc.CancelDowngrade,
	gateway domain.PaymentGateway,
) *BillingHandler {
	return &BillingHandler{
		db:              db,
		checkout:        checkout,
		status:          status,
		changePlan:      changePlan,
		cancelDowngrade: cancelDowngrade,
		gateway:         gateway,
	}
}

// --------- Requests ---------

type CheckoutRequest struct {
	PlanID uint `json:"plan_id" binding:"required"`
}

type ChangePlanRequest struct {
	PlanID uint `json:"plan_id" binding:"required"`
}

// --------- Handlers ---------

func (h *BillingHandler) Checkout(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	res, err := h.checkout.Execute(c.Request.Context(), uc.CheckoutInput{
		UserID:           userID,
		Email:            user.Email,
		StripeCustomerID: user.StripeCustomerID,
		PlanID:           req.PlanID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// Customer criado agora: persiste para as próximas sessões.
	if res.NewStripeCustomerID != "" {
		h.db.Model(&user).Update("stripe_customer_id", res.NewStripeCustomerID)
	}

	httpresp.OK(c, gin.H{"checkout_url": res.URL})
}

func (h *BillingHandler) Portal(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		httperr.BadRequest(c, "no_billing_account", "Subscribe to a plan first.")
		return
	}

	url, err := h.gateway.BillingPortalURL(c.Request.Context(), *user.StripeCustomerID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"portal_url": url})
}

func (h *BillingHandler) Subscription(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	out, err := h.status.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *BillingHandler) ChangePlan(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res, err := h.changePlan.Execute(c.Request.Context(), userID, req.PlanID)
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{
		"change_kind": string(res.Decision.Kind),
		"plan_name":   res.Decision.Target.Name,
	}
	if res.Decision.Kind == domain.ChangeDowngrade {
		body["effective_at"] = res.Decision.EffectiveAt
		body["message"] = "Your plan changes at the end of the current period."
	} else {
		body["message"] = "Your plan was upgraded immediately."
	}

	c.JSON(http.StatusOK, body)
}

func (h *BillingHandler) CancelDowngrade(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	sub, err := h.cancelDowngrade.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message":   "Scheduled downgrade cancelled.",
		"plan_name": sub.PlanName,
	})
}
