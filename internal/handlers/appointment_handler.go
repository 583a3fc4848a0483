package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/httpresp"
	"github.com/TrueFadeServices/truefade-api/internal/infra/storage"
	"github.com/TrueFadeServices/truefade-api/internal/middleware"
	uc "github.com/TrueFadeServices/truefade-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER — agendamentos do cliente
// ======================================================

type AppointmentHandler struct {
	createBooking *uc.CreateBooking
	listMine      *uc.ListMyAppointments
	cancel        *uc.CancelAppointment
	reschedule    *uc.Reschedule
	submitReview  *uc.SubmitReview

	photos *storage.ReviewPhotoStore
}

func NewAppointmentHandler(
	createBooking *uc.CreateBooking,
	listMine *uc.ListMyAppointments,
	cancel *uc.CancelAppointment,
	reschedule *uc.Reschedule,
	submitReview *uc.SubmitReview,
	photos *storage.ReviewPhotoStore,
) *AppointmentHandler {
	return &AppointmentHandler{
		createBooking: createBooking,
		listMine:      listMine,
		cancel:        cancel,
		reschedule:    reschedule,
		submitReview:  submitReview,
		photos:        photos,
	}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes"`
}

type RescheduleRequest struct {
	ServiceID uint   `json:"service_id"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
}

type SubmitReviewRequest struct {
	Rating int    `json:"rating" binding:"required"`
	Text   string `json:"text"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.createBooking.Execute(c.Request.Context(), uc.CreateBookingInput{
		UserID:    userID,
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	apps, err := h.listMine.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, apps)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	apID, err := paramUint(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	res, err := h.cancel.ExecuteForCustomer(c.Request.Context(), userID, apID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"appointment":   res.Appointment,
		"cuts_restored": res.CutsRestored,
	})
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	apID, err := paramUint(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), uc.RescheduleInput{
		UserID:        userID,
		AppointmentID: apID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) SubmitReview(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	apID, err := paramUint(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.submitReview.Execute(c.Request.Context(), uc.SubmitReviewInput{
		UserID:        userID,
		AppointmentID: apID,
		Rating:        req.Rating,
		Text:          req.Text,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// UploadReviewPhoto recebe multipart, converte para webp e grava no S3.
func (h *AppointmentHandler) UploadReviewPhoto(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	apID, err := paramUint(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "photo_required", "Send the photo as multipart field 'photo'.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "upload_failed", "Could not read the uploaded file.")
		return
	}
	defer src.Close()

	url, err := h.photos.Upload(c.Request.Context(), apID, src)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "The file is not a valid JPEG or PNG image.")
		return
	}

	ap, err := h.submitReview.SetPhoto(c.Request.Context(), userID, apID, url)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func paramUint(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
