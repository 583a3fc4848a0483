package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TrueFadeServices/truefade-api/internal/models"
)

// Item é o que trafega no feed realtime do barbeiro.
type Item struct {
	EventID       string    `json:"event_id"`
	Kind          string    `json:"kind"`
	Message       string    `json:"message"`
	AppointmentID *uint     `json:"appointment_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

const feedMaxLen = 100

// Service persiste notificações e as espelha num feed Redis
// (lista + canal pub/sub). Tudo best-effort: quem chama loga e segue.
type Service struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewService(db *gorm.DB, addr, password string) *Service {
	return &Service{
		db: db,
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func feedKey(barberID uint) string {
	return fmt.Sprintf("notifications:barber:%d", barberID)
}

func feedChannel(barberID uint) string {
	return fmt.Sprintf("notifications:barber:%d:events", barberID)
}

func (s *Service) Notify(
	ctx context.Context,
	barberID uint,
	kind string,
	message string,
	appointmentID *uint,
) error {

	item := Item{
		EventID:       uuid.NewString(),
		Kind:          kind,
		Message:       message,
		AppointmentID: appointmentID,
		CreatedAt:     time.Now(),
	}

	row := models.Notification{
		BarberID:      barberID,
		EventID:       item.EventID,
		Kind:          kind,
		Message:       message,
		AppointmentID: appointmentID,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}

	payload, err := json.Marshal(item)
	if err != nil {
		return err
	}

	pipe := s.rdb.Pipeline()
	pipe.LPush(ctx, feedKey(barberID), payload)
	pipe.LTrim(ctx, feedKey(barberID), 0, feedMaxLen-1)
	pipe.Publish(ctx, feedChannel(barberID), payload)
	_, err = pipe.Exec(ctx)
	return err
}

// Recent lê o topo do feed, mais novos primeiro, deduplicado por
// event_id (replays do pub/sub podem repetir itens).
func (s *Service) Recent(
	ctx context.Context,
	barberID uint,
	limit int,
) ([]Item, error) {

	if limit <= 0 || limit > feedMaxLen {
		limit = feedMaxLen
	}

	raw, err := s.rdb.LRange(ctx, feedKey(barberID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(raw))
	items := make([]Item, 0, len(raw))

	for _, entry := range raw {
		var item Item
		if err := json.Unmarshal([]byte(entry), &item); err != nil {
			continue
		}
		if seen[item.EventID] {
			continue
		}
		seen[item.EventID] = true
		items = append(items, item)
	}

	return items, nil
}
