package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TrueFadeServices/truefade-api/internal/httpresp"
	"github.com/TrueFadeServices/truefade-api/internal/infra/notify"
	"github.com/TrueFadeServices/truefade-api/internal/middleware"
)

type NotificationHandler struct {
	feed *notify.Service
}

func NewNotificationHandler(feed *notify.Service) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// Recent lê o topo do feed Redis do barbeiro, mais novos primeiro.
func (h *NotificationHandler) Recent(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	items, err := h.feed.Recent(c.Request.Context(), barberID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, items)
}
