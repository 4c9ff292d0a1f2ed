package registration

type CreateCheckoutSessionRequest struct {
	EventID    string `json:"eventId" validate:"required"`
	UserID     string `json:"userId" validate:"required"`
	SuccessURL string `json:"successUrl" validate:"required"`
	CancelURL  string `json:"cancelUrl" validate:"required"`
}
