package appointment

import (
	"context"
	"time"

	domain "github.com/TrueFadeServices/truefade-api/internal/domain/appointment"
	"github.com/TrueFadeServices/truefade-api/internal/dto"
	"github.com/TrueFadeServices/truefade-api/internal/httperr"
	"github.com/TrueFadeServices/truefade-api/internal/timezone"
)

// ListBarberDay lista o dia do barbeiro. Para itens scheduled o estado
// de fila (in_progress / next_up / scheduled) é projetado na leitura e
// nunca persistido.
type ListBarberDay struct {
	repo domain.Repository

	tz string
}

func NewListBarberDay(repo domain.Repository, tz string) *ListBarberDay {
	return &ListBarberDay{repo: repo, tz: tz}
}

func (uc *ListBarberDay) Execute(
	ctx context.Context,
	barberID uint,
	dateStr string,
) ([]dto.AppointmentListDTO, error) {

	date, err := timezone.ParseDate(uc.tz, dateStr)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	apps, err := uc.repo.ListForBarberDay(ctx, barberID, start, end)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(uc.tz)
	out := make([]dto.AppointmentListDTO, 0, len(apps))

	for _, ap := range apps {
		item := dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			Type:        ap.Type,
			ServiceName: ap.ServiceName,
		}

		if ap.User != nil {
			item.CustomerName = ap.User.Name
		} else {
			item.CustomerName = ap.CustomerName
		}

		if domain.Status(ap.Status) == domain.StatusScheduled {
			item.QueueState = string(domain.QueueStateAt(ap.StartTime, now))
		}

		out = append(out, item)
	}

	return out, nil
}
