package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/TrueFadeServices/truefade-api/internal/httpresp"
	"github.com/TrueFadeServices/truefade-api/internal/models"
	uc "github.com/TrueFadeServices/truefade-api/internal/usecase/billing"
)

type planLister interface {
	ListActivePlans(ctx context.Context) ([]models.Plan, error)
}

type PlanHandler struct {
	repo planLister
	sync *uc.SyncPlans
}

func NewPlanHandler(repo planLister, sync *uc.SyncPlans) *PlanHandler {
	return &PlanHandler{repo: repo, sync: sync}
}

func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.repo.ListActivePlans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, plans)
}

// Sync espelha o catálogo da Stripe; restrito ao barbeiro.
func (h *PlanHandler) Sync(c *gin.Context) {
	count, err := h.sync.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"synced": count})
}
