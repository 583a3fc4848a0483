package payments

import "strings"

// NormalizeStatus mapeia o status da Stripe para o vocabulário da
// assinatura local.
func NormalizeStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "":
		return "incomplete"
	case "active":
		return "active"
	case "trialing":
		return "trialing"
	case "past_due":
		return "past_due"
	case "unpaid":
		return "unpaid"
	case "canceled", "incomplete_expired":
		return "canceled"
	default:
		return strings.TrimSpace(s)
	}
}
