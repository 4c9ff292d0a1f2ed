package registration

import "time"

// RegistrationPaidEvent is published after a registration transitions to
// paid, keyed by checkout session id.
type RegistrationPaidEvent struct {
	EventID           string    `json:"event_id"`
	UserID            string    `json:"user_id"`
	CheckoutSessionID string    `json:"checkout_session_id"`
	PaymentIntentID   string    `json:"payment_intent_id"`
	PaidAt            time.Time `json:"paid_at"`
}
