package appointment

import "time"

// ===============================
// Queue Projection
// ===============================

// QueueState is a read-time projection for the barber queue. It is
// recomputed on every request and never persisted.
type QueueState string

const (
	QueueInProgress QueueState = "in_progress"
	QueueNextUp     QueueState = "next_up"
	QueueScheduled  QueueState = "scheduled"
)

const (
	inProgressWindow = 15 * time.Minute
	nextUpWindow     = 60 * time.Minute
)

func QueueStateAt(start time.Time, now time.Time) QueueState {
	diff := start.Sub(now)

	if diff >= -inProgressWindow && diff <= inProgressWindow {
		return QueueInProgress
	}
	if diff > inProgressWindow && diff <= nextUpWindow {
		return QueueNextUp
	}
	return QueueScheduled
}
