package billing

import "github.com/TrueFadeServices/truefade-api/internal/models"

// ===============================
// Entitlement Ledger (pure)
// ===============================

// RemainingCuts nunca fica negativo, mesmo com cuts_used acima do plano.
func RemainingCuts(sub *models.Subscription) int {
	if sub == nil {
		return 0
	}

	remaining := sub.CutsIncluded - sub.CutsUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

func IsActive(sub *models.Subscription) bool {
	if sub == nil {
		return false
	}
	return sub.Status == "active" || sub.Status == "trialing"
}

func WillAutoRenew(sub *models.Subscription) bool {
	return sub != nil && sub.Status == "active" && !sub.CancelAtPeriodEnd
}

// CanBook is the advisory eligibility check. The write path re-evaluates
// it under a row lock; see appointment.Repository.CreateBookingIfEligible.
func CanBook(sub *models.Subscription) bool {
	return IsActive(sub) && RemainingCuts(sub) > 0
}

func HasPendingDowngrade(sub *models.Subscription) bool {
	return sub != nil && sub.ScheduledPriceID != nil && *sub.ScheduledPriceID != ""
}
