package model

import "time"

// JobStatus is a state in the print job lifecycle.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobPrinting   JobStatus = "printing"
	JobProcessing JobStatus = "processing"
	JobReady      JobStatus = "ready"
	JobCompleted  JobStatus = "completed"
	JobError      JobStatus = "error"
)

// AllJobStatuses lists every known status in lifecycle order.
var AllJobStatuses = []JobStatus{JobPending, JobPrinting, JobProcessing, JobReady, JobCompleted, JobError}

// Valid reports whether s is a known status.
func (s JobStatus) Valid() bool {
	_, ok := jobStatusRank[s]
	return ok
}

// Terminal reports whether no further transition is allowed from s.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobError
}

// Cancellable reports whether a job in status s may still be withdrawn.
func (s JobStatus) Cancellable() bool {
	return s == JobPending || s == JobPrinting || s == JobProcessing
}

// printing and processing share a rank: they are alternative names for the
// in-progress state used by different printer drivers.
var jobStatusRank = map[JobStatus]int{
	JobPending:    0,
	JobPrinting:   1,
	JobProcessing: 1,
	JobReady:      2,
	JobCompleted:  3,
	JobError:      3,
}

// CanTransition reports whether a job may move from s to next.
// Moves are forward-only; error is reachable from any non-terminal state.
func (s JobStatus) CanTransition(next JobStatus) bool {
	if !next.Valid() || s.Terminal() {
		return false
	}
	if next == JobError {
		return true
	}
	return jobStatusRank[next] > jobStatusRank[s]
}

// PrintJob is a request to print a Document.
type PrintJob struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	DocumentID    string         `json:"document_id"`
	PrinterID     *string        `json:"printer_id,omitempty"`
	TokenType     TokenType      `json:"token_type"`
	Status        JobStatus      `json:"status"`
	Settings      PrintSettings  `json:"settings"`
	PrintCost     float64        `json:"print_cost"`
	TokenFee      float64        `json:"token_fee"`
	Cost          float64        `json:"cost"`
	PaymentID     *string        `json:"payment_id,omitempty"`
	PaymentStatus *PaymentStatus `json:"payment_status,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
}
