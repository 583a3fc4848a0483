package dto

import "time"

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	Type         string    `json:"type"`
	CustomerName string    `json:"customer_name"`
	ServiceName  string    `json:"service_name"`
	QueueState   string    `json:"queue_state,omitempty"`
}
