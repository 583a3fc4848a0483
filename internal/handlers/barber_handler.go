package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/httpresp"
	"github.com/TrueFadeServices/truefade-api/internal/middleware"
	uc "github.com/TrueFadeServices/truefade-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER — agenda do barbeiro
// ======================================================

type BarberHandler struct {
	createWalkIn *uc.CreateWalkIn
	listDay      *uc.ListBarberDay
	complete     *uc.CompleteAppointment
	cancel       *uc.CancelAppointment
	noShow       *uc.MarkNoShow
}

func NewBarberHandler(
	createWalkIn *uc.CreateWalkIn,
	listDay *uc.ListBarberDay,
	complete *uc.CompleteAppointment,
	cancel *uc.CancelAppointment,
	noShow *uc.MarkNoShow,
) *BarberHandler {
	return &BarberHandler{
		createWalkIn: createWalkIn,
		listDay:      listDay,
		complete:     complete,
		cancel:       cancel,
		noShow:       noShow,
	}
}

// --------- Requests ---------

type CreateWalkInRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Notes         string `json:"notes"`
}

// --------- Handlers ---------

func (h *BarberHandler) CreateWalkIn(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateWalkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.createWalkIn.Execute(c.Request.Context(), uc.CreateWalkInInput{
		BarberID:      barberID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ListDay devolve o dia com o estado de fila projetado por item.
func (h *BarberHandler) ListDay(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "date_required", "Query param 'date' (YYYY-MM-DD) is required.")
		return
	}

	items, err := h.listDay.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *BarberHandler) Complete(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	apID, err := paramUint(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), barberID, apID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *BarberHandler) Cancel(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	apID, err := paramUint(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	res, err := h.cancel.ExecuteForBarber(c.Request.Context(), barberID, apID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"appointment":   res.Appointment,
		"cuts_restored": res.CutsRestored,
	})
}

func (h *BarberHandler) NoShow(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	apID, err := paramUint(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.noShow.Execute(c.Request.Context(), barberID, apID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
