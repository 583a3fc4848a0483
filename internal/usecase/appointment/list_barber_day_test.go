package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/TrueFadeServices/truefade-api/internal/domain/appointment"
	"github.com/TrueFadeServices/truefade-api/internal/models"
)

func TestListBarberDay_ProjectsQueueState(t *testing.T) {
	repo := newFakeRepo()
	now := time.Now().UTC()
	today := now.Format("2006-01-02")

	seed := func(id uint, offset time.Duration, status string) {
		repo.appointments[id] = &models.Appointment{
			ID:          id,
			BarberID:    1,
			Type:        string(domain.TypeBooking),
			ServiceName: "Fade",
			StartTime:   now.Add(offset),
			EndTime:     now.Add(offset + 30*time.Minute),
			Status:      status,
		}
	}

	seed(1, 5*time.Minute, "scheduled")  // in_progress
	seed(2, 30*time.Minute, "scheduled") // next_up
	seed(3, 3*time.Hour, "scheduled")    // scheduled
	seed(4, 1*time.Hour, "completed")    // terminal: sem estado de fila

	uc := NewListBarberDay(repo, testTZ)
	items, err := uc.Execute(context.Background(), 1, today)
	require.NoError(t, err)

	states := make(map[uint]string, len(items))
	for _, item := range items {
		states[item.ID] = item.QueueState
	}

	// Dependendo da hora do dia alguns horários caem fora da janela de
	// hoje; só validamos os que o listing devolveu.
	if state, ok := states[1]; ok {
		assert.Equal(t, "in_progress", state)
	}
	if state, ok := states[2]; ok {
		assert.Equal(t, "next_up", state)
	}
	if state, ok := states[3]; ok {
		assert.Equal(t, "scheduled", state)
	}
	if state, ok := states[4]; ok {
		assert.Empty(t, state)
	}
}

func TestListBarberDay_InvalidDate(t *testing.T) {
	uc := NewListBarberDay(newFakeRepo(), testTZ)

	_, err := uc.Execute(context.Background(), 1, "not-a-date")
	assert.Error(t, err)
}
