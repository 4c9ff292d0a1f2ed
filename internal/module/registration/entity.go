package registration

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"

	TicketStatusValid = "VALID"
)

type Registration struct {
	ID                string    `json:"id"`
	EventID           string    `json:"event_id"`
	UserID            string    `json:"user_id"`
	UserEmail         string    `json:"user_email,omitempty"`
	Status            string    `json:"status"`
	PaymentStatus     string    `json:"payment_status"`
	PaymentAmount     float64   `json:"payment_amount"`
	CheckoutSessionID string    `json:"checkout_session_id"`
	PaymentIntentID   string    `json:"payment_intent_id,omitempty"`
	TicketNumber      string    `json:"ticket_number"`
	TicketStatus      string    `json:"ticket_status"`
	CreatedAt         time.Time `json:"created_at"`
}

// PaymentUpdate holds the terminal values applied to a pending registration
// when the gateway confirms payment. The same values may be re-applied on a
// redelivered notification without changing the outcome.
type PaymentUpdate struct {
	Status          string `json:"status"`
	PaymentStatus   string `json:"payment_status"`
	PaymentIntentID string `json:"payment_intent_id"`
}
