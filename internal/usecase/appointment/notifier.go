package appointment

import "context"

// Notifier alimenta o feed realtime do barbeiro. Entrega é best-effort:
// falha aqui nunca derruba a operação principal.
type Notifier interface {
	Notify(ctx context.Context, barberID uint, kind, message string, appointmentID *uint) error
}
