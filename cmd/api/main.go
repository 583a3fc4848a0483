package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TrueFadeServices/truefade-api/internal/config"
	dbpkg "github.com/TrueFadeServices/truefade-api/internal/db"
	"github.com/TrueFadeServices/truefade-api/internal/infra/notify"
	"github.com/TrueFadeServices/truefade-api/internal/middleware"
	"github.com/TrueFadeServices/truefade-api/internal/reminders"
	"github.com/TrueFadeServices/truefade-api/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	// Lembretes por SMS só quando o Twilio estiver configurado.
	if cfg.TwilioAccountSID != "" {
		sms := notify.NewSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
		sched := reminders.NewScheduler(db, sms, cfg.ShopTimezone)
		if err := sched.Start(); err != nil {
			log.Printf("reminders disabled: %v", err)
		}
	}

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
