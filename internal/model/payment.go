package model

import "time"

// PaymentStatus is the state of a gateway transaction.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Terminal reports whether the gateway has settled the payment.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentCompleted || s == PaymentCancelled
}

// DefaultCurrency is used when a payment does not name one.
const DefaultCurrency = "INR"

// Payment is a monetary transaction tied to a user and optionally a print job.
type Payment struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	PrintJobID *string       `json:"print_job_id,omitempty"`
	Amount     float64       `json:"amount"`
	Currency   string        `json:"currency"`
	ExternalID string        `json:"external_id,omitempty"`
	Status     PaymentStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
