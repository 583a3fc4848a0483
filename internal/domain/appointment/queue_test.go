package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueueStateAt(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		offset time.Duration
		want   QueueState
	}{
		{"started 15min ago", -15 * time.Minute, QueueInProgress},
		{"started just now", 0, QueueInProgress},
		{"starts in 10min", 10 * time.Minute, QueueInProgress},
		{"starts in exactly 15min", 15 * time.Minute, QueueInProgress},
		{"starts in 16min", 16 * time.Minute, QueueNextUp},
		{"starts in 45min", 45 * time.Minute, QueueNextUp},
		{"starts in exactly 60min", 60 * time.Minute, QueueNextUp},
		{"starts in 61min", 61 * time.Minute, QueueScheduled},
		{"starts tomorrow", 24 * time.Hour, QueueScheduled},
		{"started 16min ago", -16 * time.Minute, QueueScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QueueStateAt(now.Add(tt.offset), now))
		})
	}
}
