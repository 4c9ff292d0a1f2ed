package registration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/Sharif-Hamza/eventlynk-backend/internal/pkg/metrics"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/errors"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/middleware"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/response"
	"github.com/Sharif-Hamza/eventlynk-backend/pkg/status"
)

const signatureHeader = "Stripe-Signature"

type HTTPHandler struct {
	Validate            *validator.Validate
	RegistrationUseCase RegistrationUseCase
}

func InitHTTPHandler(router *mux.Router, validate *validator.Validate, registrationUseCase RegistrationUseCase) {
	handler := &HTTPHandler{
		Validate:            validate,
		RegistrationUseCase: registrationUseCase,
	}

	router.HandleFunc("/", middleware.SetRouteChain(handler.Health)).Methods(http.MethodGet)
	router.HandleFunc("/create-checkout-session", middleware.SetRouteChain(handler.CreateCheckoutSession)).Methods(http.MethodPost)
	router.HandleFunc("/webhook", middleware.SetRouteChain(handler.Webhook)).Methods(http.MethodPost)
}

func (handler HTTPHandler) validate(ctx context.Context, payload interface{}) error {
	err := handler.Validate.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	errorFields := err.(validator.ValidationErrors)

	errMessages := make([]string, len(errorFields))

	for k, errorField := range errorFields {
		errMessages[k] = fmt.Sprintf("invalid '%s' with value '%v'", errorField.Field(), errorField.Value())
	}

	return fmt.Errorf("%s", strings.Join(errMessages, ", "))
}

func (handler HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (handler HTTPHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := CreateCheckoutSessionRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.JSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := handler.validate(ctx, req); err != nil {
		response.JSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := handler.RegistrationUseCase.CreateCheckoutSession(ctx, req)
	if err != nil {
		ae := errors.Destruct(err)
		metrics.CheckoutSessionFailures.WithLabelValues(ae.Status).Inc()

		if ae.HTTPStatusCode >= http.StatusInternalServerError {
			response.JSON(w, ae.HTTPStatusCode, ServerErrorResponse{
				Error:   "an unexpected error occurred",
				Type:    ae.Status,
				Details: ae.Message,
			})
			return
		}

		response.JSON(w, ae.HTTPStatusCode, ErrorResponse{Error: ae.Message})
		return
	}

	response.JSON(w, http.StatusOK, resp)
}

func (handler HTTPHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// The raw bytes are what the gateway signed; they must reach the
	// verifier unparsed.
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		response.Text(w, http.StatusBadRequest, "Webhook Error: could not read request body")
		return
	}

	if err := handler.RegistrationUseCase.OnWebhookNotification(ctx, payload, r.Header.Get(signatureHeader)); err != nil {
		ae := errors.Destruct(err)
		if ae.Status == status.UNAUTHORIZED {
			metrics.WebhookSignatureFailures.Inc()
		}

		response.Text(w, http.StatusBadRequest, fmt.Sprintf("Webhook Error: %s", ae.Message))
		return
	}

	response.JSON(w, http.StatusOK, WebhookAckResponse{Received: true})
}
