package registration

type CreateCheckoutSessionResponse struct {
	URL string `json:"url"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type WebhookAckResponse struct {
	Received bool `json:"received"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ServerErrorResponse struct {
	Error   string `json:"error"`
	Type    string `json:"type"`
	Details string `json:"details"`
}
