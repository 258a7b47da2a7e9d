package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
)

type Payment struct {
	ID        string        `json:"id"`
	Amount    null.Float    `json:"amount"`
	Status    PaymentStatus `json:"status"`
	SessionID string        `json:"sessionId"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`

	Session *ParkingSession `json:"session,omitempty"`
}
