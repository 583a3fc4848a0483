package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TrueFadeServices/truefade-api/internal/models"
)

func TestRemainingCuts(t *testing.T) {
	tests := []struct {
		name     string
		included int
		used     int
		want     int
	}{
		{"fresh period", 4, 0, 4},
		{"partially used", 4, 3, 1},
		{"exhausted", 4, 4, 0},
		{"overdrawn clamps to zero", 4, 6, 0},
		{"zero plan", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &models.Subscription{CutsIncluded: tt.included, CutsUsed: tt.used}
			assert.Equal(t, tt.want, RemainingCuts(sub))
		})
	}
}

func TestRemainingCuts_NilSubscription(t *testing.T) {
	assert.Equal(t, 0, RemainingCuts(nil))
}

func TestCanBook(t *testing.T) {
	tests := []struct {
		name   string
		status string
		used   int
		want   bool
	}{
		{"active with cuts", "active", 1, true},
		{"trialing with cuts", "trialing", 0, true},
		{"active but exhausted", "active", 4, false},
		{"past_due with cuts", "past_due", 0, false},
		{"canceled with cuts", "canceled", 0, false},
		{"incomplete", "incomplete", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &models.Subscription{
				Status:       tt.status,
				CutsIncluded: 4,
				CutsUsed:     tt.used,
			}
			assert.Equal(t, tt.want, CanBook(sub))
		})
	}
}

func TestCanBook_NoSubscription(t *testing.T) {
	assert.False(t, CanBook(nil))
}

func TestWillAutoRenew(t *testing.T) {
	assert.True(t, WillAutoRenew(&models.Subscription{Status: "active"}))
	assert.False(t, WillAutoRenew(&models.Subscription{Status: "active", CancelAtPeriodEnd: true}))
	assert.False(t, WillAutoRenew(&models.Subscription{Status: "trialing"}))
	assert.False(t, WillAutoRenew(nil))
}

func TestHasPendingDowngrade(t *testing.T) {
	price := "price_basic"
	empty := ""

	assert.True(t, HasPendingDowngrade(&models.Subscription{ScheduledPriceID: &price}))
	assert.False(t, HasPendingDowngrade(&models.Subscription{ScheduledPriceID: &empty}))
	assert.False(t, HasPendingDowngrade(&models.Subscription{}))
	assert.False(t, HasPendingDowngrade(nil))
}
