package reminders

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	domain "github.com/TrueFadeServices/truefade-api/internal/domain/appointment"
	"github.com/TrueFadeServices/truefade-api/internal/models"
	"github.com/TrueFadeServices/truefade-api/internal/timezone"
)

// ======================================================
// LEMBRETES — SMS no dia anterior
// ======================================================

type smsSender interface {
	Send(to, body string) error
}

// Scheduler roda todo dia às 9h (fuso do salão) e avisa por SMS quem
// tem horário marcado para o dia seguinte. Melhor esforço: falha de
// envio só loga.
type Scheduler struct {
	db  *gorm.DB
	sms smsSender

	tz   string
	cron *cron.Cron
}

func NewScheduler(db *gorm.DB, sms smsSender, tz string) *Scheduler {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}

	return &Scheduler{
		db:   db,
		sms:  sms,
		tz:   tz,
		cron: cron.New(cron.WithLocation(loc)),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 9 * * *", s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runOnce() {
	now := timezone.NowIn(s.tz)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	var apps []models.Appointment
	err := s.db.
		Preload("User").
		Where("status = ? AND start_time >= ? AND start_time < ?",
			string(domain.StatusScheduled), dayStart, dayEnd).
		Find(&apps).Error
	if err != nil {
		log.Println("reminders: query:", err)
		return
	}

	sent := 0
	for _, ap := range apps {
		phone := ap.CustomerPhone
		if ap.User != nil && ap.User.Phone != "" {
			phone = ap.User.Phone
		}
		if phone == "" {
			continue
		}

		body := fmt.Sprintf(
			"Reminder: %s tomorrow at %s. Reply to this number if you need to reschedule.",
			ap.ServiceName,
			ap.StartTime.In(now.Location()).Format("15:04"),
		)

		if err := s.sms.Send(phone, body); err != nil {
			log.Println("reminders: sms to", phone, ":", err)
			continue
		}
		sent++
	}

	log.Printf("reminders: %d/%d sent for %s", sent, len(apps), dayStart.Format("2006-01-02"))
}
