package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TrueFadeServices/truefade-api/internal/audit"
	"github.com/TrueFadeServices/truefade-api/internal/config"
	"github.com/TrueFadeServices/truefade-api/internal/handlers"
	"github.com/TrueFadeServices/truefade-api/internal/infra/notify"
	"github.com/TrueFadeServices/truefade-api/internal/infra/payments"
	infraRepo "github.com/TrueFadeServices/truefade-api/internal/infra/repository"
	"github.com/TrueFadeServices/truefade-api/internal/infra/storage"
	"github.com/TrueFadeServices/truefade-api/internal/middleware"
	"github.com/TrueFadeServices/truefade-api/internal/models"
	ucAppointment "github.com/TrueFadeServices/truefade-api/internal/usecase/appointment"
	ucBilling "github.com/TrueFadeServices/truefade-api/internal/usecase/billing"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	billingRepo := infraRepo.NewBillingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	feed := notify.NewService(db, cfg.RedisAddr, cfg.RedisPassword)
	photos := storage.NewReviewPhotoStore(
		cfg.S3Region, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3PublicURL,
	)
	gateway := payments.NewStripeGateway(cfg.StripeSecretKey, cfg.AppURL)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createBookingUC := ucAppointment.NewCreateBooking(
		appointmentRepo,
		auditDispatcher,
		feed,
		cfg.ShopTimezone,
		cfg.MinAdvanceMinutes,
	)

	createWalkInUC := ucAppointment.NewCreateWalkIn(
		appointmentRepo,
		auditDispatcher,
		cfg.ShopTimezone,
	)

	completeUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
		cfg.ShopTimezone,
	)

	cancelUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
		feed,
		cfg.ShopTimezone,
	)

	noShowUC := ucAppointment.NewMarkNoShow(
		appointmentRepo,
		auditDispatcher,
		cfg.ShopTimezone,
	)

	rescheduleUC := ucAppointment.NewReschedule(
		appointmentRepo,
		auditDispatcher,
		feed,
		cfg.ShopTimezone,
		cfg.MinAdvanceMinutes,
	)

	submitReviewUC := ucAppointment.NewSubmitReview(
		appointmentRepo,
		auditDispatcher,
		cfg.ShopTimezone,
	)

	listBarberDayUC := ucAppointment.NewListBarberDay(appointmentRepo, cfg.ShopTimezone)
	listMineUC := ucAppointment.NewListMyAppointments(appointmentRepo)

	// ======================================================
	// 🧠 USE CASES — BILLING
	// ======================================================
	checkoutUC := ucBilling.NewCheckout(billingRepo, gateway, auditDispatcher)
	statusUC := ucBilling.NewSubscriptionStatus(billingRepo)
	changePlanUC := ucBilling.NewChangePlan(billingRepo, gateway, auditDispatcher)
	cancelDowngradeUC := ucBilling.NewCancelDowngrade(billingRepo, gateway, auditDispatcher)
	syncPlansUC := ucBilling.NewSyncPlans(billingRepo, gateway)

	// ======================================================
	// 🎯 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createBookingUC, listMineUC, cancelUC, rescheduleUC, submitReviewUC, photos,
	)
	barberHandler := handlers.NewBarberHandler(
		createWalkInUC, listBarberDayUC, completeUC, cancelUC, noShowUC,
	)

	billingHandler := handlers.NewBillingHandler(
		db, checkoutUC, statusUC, changePlanUC, cancelDowngradeUC, gateway,
	)
	planHandler := handlers.NewPlanHandler(billingRepo, syncPlansUC)
	webhookHandler := handlers.NewStripeWebhookHandler(billingRepo, cfg.StripeWebhookSecret)

	notificationHandler := handlers.NewNotificationHandler(feed)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 ROTAS PÚBLICAS
	// ======================================================
	api := r.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/services", serviceHandler.List)
	api.GET("/plans", planHandler.List)

	// Assinada pela Stripe, não pelo nosso JWT.
	api.POST("/webhooks/stripe", webhookHandler.Handle)

	// ======================================================
	// 🔒 ROTAS AUTENTICADAS — CLIENTE
	// ======================================================
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(cfg))

	auth.GET("/me", meHandler.GetMe)

	auth.POST("/me/appointments", appointmentHandler.Create)
	auth.GET("/me/appointments", appointmentHandler.ListMine)
	auth.POST("/me/appointments/:id/cancel", appointmentHandler.Cancel)
	auth.PUT("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)
	auth.POST("/me/appointments/:id/review", appointmentHandler.SubmitReview)
	auth.POST("/me/appointments/:id/review/photo", appointmentHandler.UploadReviewPhoto)

	auth.POST("/billing/checkout", billingHandler.Checkout)
	auth.GET("/billing/portal", billingHandler.Portal)
	auth.GET("/billing/subscription", billingHandler.Subscription)
	auth.POST("/billing/change-plan", billingHandler.ChangePlan)
	auth.POST("/billing/cancel-downgrade", billingHandler.CancelDowngrade)

	// ======================================================
	// 🔒 ROTAS AUTENTICADAS — BARBEIRO
	// ======================================================
	barber := api.Group("/barber")
	barber.Use(middleware.AuthMiddleware(cfg))
	barber.Use(middleware.RequireRole(models.RoleBarber))

	barber.POST("/walk-ins", barberHandler.CreateWalkIn)
	barber.GET("/appointments", barberHandler.ListDay)
	barber.POST("/appointments/:id/complete", barberHandler.Complete)
	barber.POST("/appointments/:id/cancel", barberHandler.Cancel)
	barber.POST("/appointments/:id/no-show", barberHandler.NoShow)

	barber.POST("/services", serviceHandler.Create)
	barber.PUT("/services/:id", serviceHandler.Update)

	barber.POST("/plans/sync", planHandler.Sync)

	barber.GET("/notifications", notificationHandler.Recent)
	barber.GET("/audit-logs", auditLogsHandler.List)
}
