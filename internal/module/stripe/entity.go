package stripe

const (
	ModePayment = "payment"

	CheckoutSessionCompleted = "checkout.session.completed"
)

type CreateCheckoutSessionRequest struct {
	Mode               string
	Currency           string
	UnitAmount         int64
	ProductName        string
	ProductDescription string
	Quantity           int64
	SuccessURL         string
	CancelURL          string
	CustomerEmail      string
	Metadata           map[string]string
}

type CheckoutSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
}

type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

type EventData struct {
	Object CheckoutSessionObject `json:"object"`
}

type CheckoutSessionObject struct {
	ID            string            `json:"id"`
	PaymentIntent string            `json:"payment_intent"`
	Metadata      map[string]string `json:"metadata"`
}
