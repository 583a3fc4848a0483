package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TrueFadeServices/truefade-api/internal/httperr"
)

// respondError traduz erros de domínio para HTTP. Elegibilidade carrega
// o saldo restante para a mensagem do cliente.
func respondError(c *gin.Context, err error) {
	if ee, ok := httperr.AsEligibility(err); ok {
		c.JSON(http.StatusConflict, gin.H{
			"error_code":     ee.Code,
			"message":        "You have no cuts remaining this period.",
			"remaining_cuts": ee.RemainingCuts,
		})
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		switch be.Code {
		case "appointment_not_found", "service_not_found", "plan_not_found", "subscription_not_found":
			httperr.NotFound(c, be.Code, "Not found.")
		case "time_conflict":
			httperr.Conflict(c, be.Code, "That time slot is taken.")
		case "same_plan":
			httperr.Conflict(c, be.Code, "Already on this plan.")
		case "invalid_state":
			httperr.BadRequest(c, be.Code, "Appointment can no longer change state.")
		case "review_not_allowed":
			httperr.BadRequest(c, be.Code, "Cancelled appointments cannot be reviewed.")
		default:
			httperr.BadRequest(c, be.Code, "Invalid request.")
		}
		return
	}

	httperr.Internal(c, "internal_error", "Unexpected error.")
}
